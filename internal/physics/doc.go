// Package physics provides the material properties used by the heat solvers.
//
// A [Material] is a plain value: thermal conductivity, density and specific
// heat. The diffusivity that drives the heat equation is derived from them:
//
//	alpha = lambda / (rho * c)
//
// The package ships the four reference materials of the simulator
// ([Copper], [Iron], [Glass], [Polystyrene]) and a small lookup table:
//
//	mat, err := physics.Lookup("glass")
//	fmt.Println(mat.Alpha())
package physics
