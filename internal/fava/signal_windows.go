//go:build windows

package fava

import "os"

var sigTerm = os.Kill
