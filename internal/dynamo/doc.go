// Package dynamo provides the core primitives for simulating a driven
// second-order linear ODE:
//
//   - [State]: position/velocity/time snapshot, copied by value
//   - [DerivFunc]: pure derivative function dX/dt = f(x, v, t)
//   - [Integrator]: fixed-step numerical stepper
//   - [Metric], [Observer]: trajectory instrumentation hooks
//
// # Example
//
//	sys, _ := oscillator.New(1, 0, 1, 1, 0)
//	for i := 0; i < 1000; i++ {
//		s := sys.Step(0.01)
//		fmt.Println(s.Time, s.Position)
//	}
//
// # Thread Safety
//
// Nothing here is safe for concurrent use. The intended usage is one
// system instance driven by one control loop; independent instances
// share no state.
package dynamo
