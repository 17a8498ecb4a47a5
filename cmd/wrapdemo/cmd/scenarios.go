package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"maps"
	"slices"
	"time"

	"go.opentelemetry.io/otel/trace"

	wrappers "github.com/jdziat/simple-invocation-wrappers"
	"github.com/jdziat/simple-invocation-wrappers/pkg/metrics"
	"github.com/jdziat/simple-invocation-wrappers/pkg/telemetry"
	"github.com/jdziat/simple-invocation-wrappers/pkg/timing"
)

// scenarioEnv carries what every scenario wrapper is built with.
type scenarioEnv struct {
	out     io.Writer
	clock   wrappers.Clock
	delay   time.Duration
	logger  *slog.Logger
	store   wrappers.RecordStore
	tracer  trace.Tracer
	metrics *metrics.Collector
}

type scenarioFunc func(ctx context.Context, env *scenarioEnv) error

var scenarios = map[string]scenarioFunc{
	"hello":       runHello,
	"greet":       runGreet,
	"square":      runSquare,
	"sum":         runSum,
	"sum-invalid": runSumInvalid,
	"timed":       runTimed,
	"stamped":     runStamped,
	"callable":    runCallable,
}

// scenarioNames is the default run order.
var scenarioNames = []string{"hello", "greet", "square", "sum", "sum-invalid", "timed", "stamped", "callable"}

func checkScenarios(names []string) error {
	for _, name := range names {
		if _, ok := scenarios[name]; !ok {
			return fmt.Errorf("unknown scenario %q (available: %v)", name, scenarioNames)
		}
	}
	return nil
}

func runScenarios(ctx context.Context, env *scenarioEnv, names []string) error {
	for _, name := range names {
		fn, ok := scenarios[name]
		if !ok {
			return fmt.Errorf("unknown scenario %q", name)
		}
		fmt.Fprintf(env.out, "== %s\n", name)
		if err := fn(ctx, env); err != nil {
			return fmt.Errorf("scenario %s: %w", name, err)
		}
	}
	return nil
}

// wrap binds unit with the recording, tracing and metrics every scenario
// shares. Scenario options are applied last, so their middleware runs inside.
func (e *scenarioEnv) wrap(name string, unit any, opts ...wrappers.Option) (*wrappers.Wrapper, error) {
	base := []wrappers.Option{
		wrappers.Name(name),
		wrappers.WithLogger(e.logger),
		wrappers.WithClock(e.clock),
	}
	if e.store != nil {
		base = append(base, wrappers.Recorded(e.store))
	}
	if e.tracer != nil {
		base = append(base, wrappers.Use(telemetry.Middleware(e.tracer, name)))
	}
	if e.metrics != nil {
		base = append(base, wrappers.Use(e.metrics.Middleware(name)))
	}
	return wrappers.New(unit, append(base, opts...)...)
}

func (e *scenarioEnv) println(a ...any) {
	fmt.Fprintln(e.out, a...)
}

func runHello(ctx context.Context, env *scenarioEnv) error {
	w, err := env.wrap("hello", func() { env.println("This happened!") },
		wrappers.Use(
			wrappers.Before(func(context.Context, wrappers.Args) { env.println("This happened before!") }),
			wrappers.After(func(context.Context, any, error) {
				env.println("This happens after")
				env.println("This happened at the end!")
			}),
		),
	)
	if err != nil {
		return err
	}
	_, err = w.Call(ctx)
	return err
}

func greet(name string, named wrappers.Named) string {
	message := "Hello"
	if m, ok := named["message"].(string); ok {
		message = m
	}
	return fmt.Sprintf("%s, %s", message, name)
}

func runGreet(ctx context.Context, env *scenarioEnv) error {
	w, err := env.wrap("greet", greet)
	if err != nil {
		return err
	}
	out, err := w.Invoke(ctx, wrappers.NewArgs("jainendra kumar").WithNamed("message", "hello"))
	if err != nil {
		return err
	}
	env.println(out)
	return nil
}

func runSquare(ctx context.Context, env *scenarioEnv) error {
	square := func(n int) int {
		env.println("given number is:", n)
		return n * n
	}
	w, err := env.wrap("square", square,
		wrappers.Use(wrappers.Tap(func(_ context.Context, result any) { env.println(result) })))
	if err != nil {
		return err
	}
	result, err := wrappers.Result[int](ctx, w, 195)
	if err != nil {
		return err
	}
	env.println("Square of number is:", result)
	return nil
}

func addNumbers(numbers ...int) int {
	total := 0
	for _, n := range numbers {
		total += n
	}
	return total
}

func (e *scenarioEnv) sumWrapper() (*wrappers.Wrapper, error) {
	return e.wrap("sum", addNumbers, wrappers.Validating(wrappers.NumericOnly()))
}

func runSum(ctx context.Context, env *scenarioEnv) error {
	w, err := env.sumWrapper()
	if err != nil {
		return err
	}
	total, err := w.Call(ctx, 1, 2, 3)
	if err != nil {
		return err
	}
	env.println("sum(1, 2, 3) =", total)
	return nil
}

func runSumInvalid(ctx context.Context, env *scenarioEnv) error {
	w, err := env.sumWrapper()
	if err != nil {
		return err
	}
	_, err = w.Call(ctx, 1, "2", 3)
	if !errors.Is(err, wrappers.ErrInvalidArgumentKind) {
		return fmt.Errorf("expected a rejection, got %v", err)
	}
	env.println(`sum(1, "2", 3) rejected:`, err)
	return nil
}

func runTimed(ctx context.Context, env *scenarioEnv) error {
	reporters := []timing.Reporter{timing.WriterReporter(env.out)}
	if env.metrics != nil {
		reporters = append(reporters, env.metrics.Reporter())
	}

	sleep := func(ctx context.Context, delay time.Duration) error {
		select {
		case <-time.After(delay):
			return nil
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	w, err := env.wrap("timed", sleep, wrappers.Timed(timing.Multi(reporters...)))
	if err != nil {
		return err
	}
	_, err = w.Call(ctx, env.delay)
	return err
}

func runStamped(ctx context.Context, env *scenarioEnv) error {
	stamp := func(context.Context, wrappers.Args) { env.println(env.clock.Now().UTC().Format(time.RFC3339Nano)) }
	increment := wrappers.MapArgs(func(args wrappers.Args) (wrappers.Args, error) {
		n, ok := args.At(0).(int)
		if !ok {
			return args, wrappers.InvalidArgumentKind(0, fmt.Sprintf("%T", args.At(0)), "int")
		}
		return wrappers.NewArgs(n + 1), nil
	})

	w, err := env.wrap("stamped", func(number int) { env.println("This happened :", number) },
		wrappers.Use(
			wrappers.Before(stamp),
			increment,
			wrappers.After(func(ctx context.Context, _ any, _ error) { stamp(ctx, wrappers.Args{}) }),
		),
	)
	if err != nil {
		return err
	}
	_, err = w.Call(ctx, 5)
	return err
}

// person is a plain value; it cannot be bound as a unit.
type person struct {
	id int
}

// employee prints whatever it is called with.
type employee struct {
	id   int
	name string
	out  io.Writer
}

func (e *employee) Invoke(_ context.Context, args wrappers.Args) (any, error) {
	fmt.Fprintln(e.out, "printing args")
	fmt.Fprintln(e.out, args.Positional...)
	fmt.Fprintln(e.out, "printing kwargs")
	for _, k := range slices.Sorted(maps.Keys(args.Named)) {
		fmt.Fprintf(e.out, "%s == %v\n", k, args.Named[k])
	}
	return nil, nil
}

func runCallable(ctx context.Context, env *scenarioEnv) error {
	p := person{id: 10}
	e := &employee{id: 10, name: "Pankaj", out: env.out}
	env.println("person is callable =", wrappers.Callable(p))
	env.println("employee is callable =", wrappers.Callable(e))

	w, err := env.wrap("employee", e)
	if err != nil {
		return err
	}
	calls := []wrappers.Args{
		wrappers.NewArgs(),
		wrappers.NewArgs(10, 20),
		wrappers.NewArgs(10, "A").WithNamed("name", "Pankaj").WithNamed("id", 20),
	}
	for _, args := range calls {
		if _, err := w.Invoke(ctx, args); err != nil {
			return err
		}
	}
	return nil
}
