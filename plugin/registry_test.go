package plugin_test

import (
	"context"
	"errors"
	"testing"

	"github.com/pyebwa/pyebwa/plugin"
)

// eventPlugin implements every operation hook and records dispatches.
type eventPlugin struct {
	name   string
	events []string
	fail   bool
}

func (p *eventPlugin) Name() string { return p.name }

func (p *eventPlugin) note(event string) error {
	p.events = append(p.events, event)
	if p.fail {
		return errors.New("hook failed")
	}
	return nil
}

func (p *eventPlugin) OnInit(context.Context, interface{}) error { return p.note("init") }
func (p *eventPlugin) OnShutdown(context.Context) error          { return p.note("shutdown") }
func (p *eventPlugin) OnPoolInitialized(context.Context, interface{}) error {
	return p.note("pool_initialized")
}
func (p *eventPlugin) OnCreditsPurchased(_ context.Context, _ string, _, _ uint64) error {
	return p.note("credits_purchased")
}
func (p *eventPlugin) OnPriceStepped(_ context.Context, _, _, _ uint64) error {
	return p.note("price_stepped")
}
func (p *eventPlugin) OnHeritagePreserved(_ context.Context, _, _ string, _, _ uint64) error {
	return p.note("heritage_preserved")
}
func (p *eventPlugin) OnPlantingSubmitted(context.Context, interface{}) error {
	return p.note("planting_submitted")
}
func (p *eventPlugin) OnPlantingVerified(_ context.Context, _ interface{}, _ uint64) error {
	return p.note("planting_verified")
}
func (p *eventPlugin) OnPlanterVerified(context.Context, string) error {
	return p.note("planter_verified")
}

// namedPlugin implements only the base interface.
type namedPlugin struct{ name string }

func (p namedPlugin) Name() string { return p.name }

func TestRegister(t *testing.T) {
	r := plugin.NewRegistry()

	if err := r.Register(&eventPlugin{name: "a"}); err != nil {
		t.Fatalf("Register: %v", err)
	}
	if err := r.Register(namedPlugin{name: "b"}); err != nil {
		t.Fatalf("Register: %v", err)
	}
	if err := r.Register(namedPlugin{name: "a"}); err == nil {
		t.Fatal("duplicate name accepted")
	}

	if got := len(r.Plugins()); got != 2 {
		t.Errorf("plugins: got %d, want 2", got)
	}
}

func TestDispatchAllHooks(t *testing.T) {
	ctx := context.Background()
	r := plugin.NewRegistry()
	p := &eventPlugin{name: "recorder"}
	if err := r.Register(p); err != nil {
		t.Fatalf("Register: %v", err)
	}

	r.EmitInit(ctx, nil)
	r.EmitPoolInitialized(ctx, nil)
	r.EmitCreditsPurchased(ctx, "alice", 10, 1000)
	r.EmitPriceStepped(ctx, 100, 101, 1_000_000)
	r.EmitHeritagePreserved(ctx, "alice", "photo", 2000, 1)
	r.EmitPlantingSubmitted(ctx, nil)
	r.EmitPlantingVerified(ctx, nil, 1000)
	r.EmitPlanterVerified(ctx, "jean")
	r.EmitShutdown(ctx)

	want := []string{
		"init",
		"pool_initialized",
		"credits_purchased",
		"price_stepped",
		"heritage_preserved",
		"planting_submitted",
		"planting_verified",
		"planter_verified",
		"shutdown",
	}
	if len(p.events) != len(want) {
		t.Fatalf("events: got %v, want %v", p.events, want)
	}
	for i, e := range want {
		if p.events[i] != e {
			t.Errorf("event %d: got %q, want %q", i, p.events[i], e)
		}
	}
}

func TestHookFailureDoesNotPanic(t *testing.T) {
	ctx := context.Background()
	r := plugin.NewRegistry()

	failing := &eventPlugin{name: "failing", fail: true}
	healthy := &eventPlugin{name: "healthy"}
	if err := r.Register(failing); err != nil {
		t.Fatalf("Register failing: %v", err)
	}
	if err := r.Register(healthy); err != nil {
		t.Fatalf("Register healthy: %v", err)
	}

	// A failing hook is logged and skipped; later plugins still run.
	r.EmitCreditsPurchased(ctx, "alice", 10, 1000)

	if len(failing.events) != 1 || len(healthy.events) != 1 {
		t.Errorf("dispatch counts: failing %d healthy %d", len(failing.events), len(healthy.events))
	}
}

func TestBasePluginReceivesNoHooks(t *testing.T) {
	ctx := context.Background()
	r := plugin.NewRegistry()
	if err := r.Register(namedPlugin{name: "bare"}); err != nil {
		t.Fatalf("Register: %v", err)
	}

	// Dispatching to a registry with no hook implementors is a no-op.
	r.EmitInit(ctx, nil)
	r.EmitCreditsPurchased(ctx, "alice", 10, 1000)
	r.EmitShutdown(ctx)
}
