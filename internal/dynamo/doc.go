// Package dynamo provides the Monte Carlo engine for the 2D Ising model.
//
// The package defines the sampling primitives:
//
//   - [Source]: random draws shared by one run
//   - [EnergyModel]: energy change of a single-site flip
//   - [Sampler]: Metropolis single-spin-flip trial moves
//   - [Simulator]: equilibration followed by measurement at one temperature
//
// # Example
//
//	h := physics.NewIsing(0, physics.NaturalUnits())
//	src := dynamo.NewSource(42)
//	s := dynamo.New(h, physics.NaturalUnits(), src)
//	result, _ := s.Run(ctx, l, 2.269, dynamo.Combined(10000))
//
// # Thread Safety
//
// Simulator instances are NOT thread-safe. A run owns its lattice and its
// random source for its whole lifetime.
package dynamo
