//go:build !windows

package fava

import "syscall"

var sigTerm = syscall.SIGTERM
