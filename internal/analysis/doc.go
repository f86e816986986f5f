// Package analysis provides post-processing for temperature sweeps.
//
//   - [CriticalTemperature]: locate the heat capacity and susceptibility peaks
//   - [Autocorrelation]: normalized autocorrelation of a measurement series
//   - [IntegratedTime]: integrated autocorrelation time
//
// Peak positions on a finite lattice approach the Onsager value [OnsagerTc]
// from above as the lattice grows.
package analysis
