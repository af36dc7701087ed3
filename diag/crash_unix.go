//go:build unix

// Package diag installs optional process-wide crash handlers that write a
// single-line diagnostic to stderr before the default signal disposition
// runs, so the host OS still produces a crash dump.
package diag

import (
	"os"
	"os/signal"
	"sync"
	"sync/atomic"
	"syscall"

	"golang.org/x/sys/unix"
)

var (
	installOnce sync.Once
	inHandler   atomic.Bool
)

var fatalSignals = []os.Signal{
	syscall.SIGABRT,
	syscall.SIGILL,
	syscall.SIGFPE,
	syscall.SIGSEGV,
	syscall.SIGBUS,
	syscall.SIGTRAP,
}

// InstallCrashHandlers installs handlers for fatal signals. Idempotent;
// only the first call has any effect.
//
// Each handled signal writes one line to stderr, restores the default
// disposition, and re-raises the signal so the process terminates the way
// the OS expects.
func InstallCrashHandlers() {
	installOnce.Do(install)
}

func install() {
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, fatalSignals...)

	go func() {
		for sig := range ch {
			handleFatal(sig)
		}
	}()
}

func handleFatal(sig os.Signal) {
	s, ok := sig.(syscall.Signal)
	if !ok {
		return
	}

	// A fault inside the handler must not loop forever.
	if !inHandler.CompareAndSwap(false, true) {
		os.Exit(128 + int(s))
	}

	os.Stderr.WriteString("[algo-pitch] native fatal signal: " + s.String() + "\n")

	signal.Reset(sig)
	unix.Kill(unix.Getpid(), s)

	os.Exit(128 + int(s))
}
