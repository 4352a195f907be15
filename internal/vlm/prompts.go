package vlm

import (
	"fmt"
	"time"
)

// beijingTZ is the fixed UTC+8 zone used for "today" in prompts, matching
// the ledger's timezone.
var beijingTZ = time.FixedZone("CST", 8*60*60)

// BeijingDate returns today's date string in UTC+8.
func BeijingDate(now time.Time) string {
	return now.In(beijingTZ).Format("2006-01-02")
}

const factSchema = `{
  "date": "YYYY-MM-DD",
  "amount": 0.0,
  "merchant": "",
  "payment_method": "支付宝/微信/银行卡/现金",
  "bank_name": "CCB/BOC/ICBC/NONE",
  "card_last_four": "XXXX",
  "transaction_type": "expense/income",
  "category": "",
  "description": ""
}`

const categoryWhitelist = `Allowed categories (category MUST be exactly one of these):
- 餐饮: 早餐, 午餐, 晚餐, 零食, 买菜
- 交通: 公交, 打车, 加油
- 住房: 房租, 水电, 宽带
- 购物: 衣服, 数码, 日用品
- 娱乐: 电影, 游戏, 聚餐
- 医疗: 药品, 看病
- 其他: 红包, 其他
- 收入 (income): 工资, 奖金, 投资`

const bankRules = `Bank recognition:
- 建设银行/建行/CCB -> "CCB", 中国银行/中行/BOC -> "BOC", 工商银行/工行/ICBC -> "ICBC"
- card_last_four is the four digits of the card number, e.g. "0388", "8735"
- For non bank-card payments set bank_name to "NONE" and card_last_four to "0000"`

// ImageParsePrompt builds the prompt for parsing a bill screenshot.
func ImageParsePrompt(now time.Time) string {
	return fmt.Sprintf(`Analyze the bill screenshot and return the transaction strictly as JSON.

Rules:
1. category must match the allowed list exactly. Never invent categories like "餐饮美食" or "交通出行".
2. Infer from context: a restaurant merchant between 11:00 and 14:00 means category "午餐"; without a time, default to "午餐".
3. Output a bare JSON string only. No markdown fences, no commentary.

%s

%s

%s

Example mappings:
- merchant "美团外卖" -> category "午餐" (never "外卖")
- merchant "全家便利店" -> category "零食" (never "便利店")
- merchant "滴滴" -> category "打车" (never "交通出行")

Today's date: %s`, factSchema, categoryWhitelist, bankRules, BeijingDate(now))
}

// TextParsePrompt builds the prompt for parsing a free-text note.
func TextParsePrompt(now time.Time) string {
	today := BeijingDate(now)
	return fmt.Sprintf(`Parse the user's bookkeeping note and return the transaction strictly as JSON.

Current date (UTC+8): %s. If the note gives no date, use it.

%s

Payment method recognition:
1. 支付宝/宝 -> "支付宝"
2. 微信/wx -> "微信"
3. 现金 -> "现金"
4. 银行卡/建行/中行/工行 or a card number -> "银行卡"

%s

%s

Output a bare JSON string only. No markdown fences, no commentary.`, today, factSchema, bankRules, categoryWhitelist)
}
