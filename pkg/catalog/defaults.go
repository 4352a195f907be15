package catalog

// BankCardMethod is the payment instrument that triggers the bank-card
// resolution chain instead of a direct instrument lookup.
const BankCardMethod = "银行卡"

// defaultSnapshot is the built-in catalog. The account ids correspond
// one-to-one to the declarations in the main ledger file; adding a card or
// category here without declaring its account there will show up as an
// undeclared account in balance queries.
var defaultSnapshot = Snapshot{
	PaymentMethods: []PaymentMethod{
		{Value: "支付宝", Label: "支付宝", Account: "Assets:Cash:Alipay"},
		{Value: "微信", Label: "微信", Account: "Assets:Cash:WeChat"},
		{Value: BankCardMethod, Label: "银行卡", Account: "Assets:Bank"},
		{Value: "现金", Label: "现金", Account: "Assets:Cash:CNY"},
	},
	BankCards: []BankCard{
		// The first card of each bank doubles as that bank's default.
		{Bank: "CCB", BankName: "建设银行", LastFour: "0388", Account: "Assets:Bank:CCB:0388"},
		{Bank: "CCB", BankName: "建设银行", LastFour: "0349", Account: "Assets:Bank:CCB:0349"},
		{Bank: "BOC", BankName: "中国银行", LastFour: "8735", Account: "Assets:Bank:BOC:8735"},
		{Bank: "BOC", BankName: "中国银行", LastFour: "1969", Account: "Assets:Bank:BOC:1969"},
		{Bank: "BOC", BankName: "中国银行", LastFour: "7870", Account: "Assets:Bank:BOC:7870"},
		{Bank: "BOC", BankName: "中国银行", LastFour: "3469", Account: "Assets:Bank:BOC:3469"},
		{Bank: "ICBC", BankName: "工商银行", LastFour: "4969", Account: "Assets:Bank:ICBC:4969"},
	},
	ExpenseCategories: []Category{
		{Value: "早餐", Label: "早餐", Account: "Expenses:Food:Breakfast", Group: "餐饮"},
		{Value: "午餐", Label: "午餐", Account: "Expenses:Food:Lunch", Group: "餐饮"},
		{Value: "晚餐", Label: "晚餐", Account: "Expenses:Food:Dinner", Group: "餐饮"},
		{Value: "餐饮", Label: "餐饮", Account: "Expenses:Food:Lunch", Group: "餐饮"},
		{Value: "零食", Label: "零食水果", Account: "Expenses:Food:Snacks", Group: "餐饮"},
		{Value: "水果", Label: "水果", Account: "Expenses:Food:Snacks", Group: "餐饮"},
		{Value: "买菜", Label: "买菜买肉", Account: "Expenses:Food:Groceries", Group: "餐饮"},

		{Value: "公交", Label: "公交地铁", Account: "Expenses:Transport:Public", Group: "交通"},
		{Value: "地铁", Label: "地铁", Account: "Expenses:Transport:Public", Group: "交通"},
		{Value: "交通", Label: "交通", Account: "Expenses:Transport:Public", Group: "交通"},
		{Value: "打车", Label: "打车", Account: "Expenses:Transport:Taxi", Group: "交通"},
		{Value: "出租车", Label: "出租车", Account: "Expenses:Transport:Taxi", Group: "交通"},
		{Value: "加油", Label: "加油/充电", Account: "Expenses:Transport:Fuel", Group: "交通"},
		{Value: "充电", Label: "充电", Account: "Expenses:Transport:Fuel", Group: "交通"},

		{Value: "房租", Label: "房租", Account: "Expenses:Housing:Rent", Group: "住房"},
		{Value: "水电", Label: "水电煤气", Account: "Expenses:Housing:Utilities", Group: "住房"},
		{Value: "水电煤", Label: "水电煤气", Account: "Expenses:Housing:Utilities", Group: "住房"},
		{Value: "宽带", Label: "宽带话费", Account: "Expenses:Housing:Internet", Group: "住房"},
		{Value: "话费", Label: "话费", Account: "Expenses:Housing:Internet", Group: "住房"},

		{Value: "购物", Label: "购物", Account: "Expenses:Shopping:Daily", Group: "购物"},
		{Value: "衣服", Label: "衣物鞋包", Account: "Expenses:Shopping:Clothing", Group: "购物"},
		{Value: "鞋子", Label: "鞋子", Account: "Expenses:Shopping:Clothing", Group: "购物"},
		{Value: "数码", Label: "数码电子", Account: "Expenses:Shopping:Electronics", Group: "购物"},
		{Value: "电子产品", Label: "电子产品", Account: "Expenses:Shopping:Electronics", Group: "购物"},
		{Value: "日用品", Label: "日用品", Account: "Expenses:Shopping:Daily", Group: "购物"},

		{Value: "娱乐", Label: "娱乐", Account: "Expenses:Entertainment:Social", Group: "娱乐"},
		{Value: "电影", Label: "电影娱乐", Account: "Expenses:Entertainment:Movies", Group: "娱乐"},
		{Value: "游戏", Label: "游戏", Account: "Expenses:Entertainment:Games", Group: "娱乐"},
		{Value: "聚餐", Label: "社交聚餐", Account: "Expenses:Entertainment:Social", Group: "娱乐"},

		{Value: "医疗", Label: "医疗", Account: "Expenses:Health:Hospital", Group: "医疗"},
		{Value: "药品", Label: "药品", Account: "Expenses:Health:Medicine", Group: "医疗"},
		{Value: "看病", Label: "医疗挂号", Account: "Expenses:Health:Hospital", Group: "医疗"},

		{Value: "红包", Label: "随礼红包", Account: "Expenses:Other:Gifts", Group: "其他"},
		{Value: "礼物", Label: "礼物", Account: "Expenses:Other:Gifts", Group: "其他"},
		{Value: "其他", Label: "其他杂项", Account: "Expenses:Other:Misc", Group: "其他"},
	},
	IncomeCategories: []Category{
		{Value: "工资", Label: "工资", Account: "Income:Salary"},
		{Value: "奖金", Label: "奖金", Account: "Income:Bonus"},
		{Value: "投资", Label: "投资收益", Account: "Income:Investment"},
	},
	LiabilityAccounts: []Liability{
		{Value: "花呗", Label: "花呗", Account: "Liabilities:Credit:花呗"},
		{Value: "先用后付", Label: "先用后付", Account: "Liabilities:Credit:先用后付"},
	},
	Fallbacks: Fallbacks{
		BankAccount:    "Assets:Bank:Other",
		AssetAccount:   "Assets:Other",
		ExpenseAccount: "Expenses:Other:Misc",
		IncomeAccount:  "Income:Other",
	},
}
