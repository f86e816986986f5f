// Package physics provides the energy model of the 2D Ising ferromagnet.
//
// [Ising] evaluates the lattice Hamiltonian with unit coupling and an external
// field B:
//
//   - [Ising.SiteContribution]: energy change of flipping one site
//   - [Ising.TotalEnergy]: energy per site of a configuration
//   - [Ising.Magnetization]: |ΣS| per site
//
// Physical constants are not globals. They travel in [Units], so two
// simulations with different unit systems can run side by side:
//
//	h := physics.NewIsing(0.5, physics.NaturalUnits())
//	dE := h.SiteContribution(l, i, j)
package physics
