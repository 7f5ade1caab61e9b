package state

import (
	"context"
	"log"
	"testing"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestContextWithEnv(t *testing.T) {
	ctx := ContextWithEnv(context.Background())
	env := EnvFromContext(ctx)
	if env == nil {
		t.Fatal("EnvFromContext() returned nil")
	}
	if env.start.IsZero() {
		t.Error("Environment start time not set")
	}
	if env.Log == nil {
		t.Error("Environment should start with a usable logger")
	}
}

func TestEnvFromContextPanics(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Error("Expected panic when env not in context")
		}
	}()
	EnvFromContext(context.Background())
}

func TestLocalEnv_Uptime(t *testing.T) {
	env := EnvFromContext(ContextWithEnv(context.Background()))
	time.Sleep(5 * time.Millisecond)
	if env.Uptime() < 5*time.Millisecond {
		t.Errorf("Uptime() = %v", env.Uptime())
	}
}

func TestRedirectStdLog(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	env := EnvFromContext(ContextWithEnv(context.Background()))
	env.Log = zap.New(core)

	env.RedirectStdLog()
	log.Print("from standard logger")
	_ = env.RestoreStdLog()
	log.Print("after restore")

	if n := logs.FilterMessage("from standard logger").Len(); n != 1 {
		t.Errorf("redirected entries = %d, want 1", n)
	}
	if n := logs.FilterMessage("after restore").Len(); n != 0 {
		t.Errorf("entries after restore = %d, want 0", n)
	}
}
