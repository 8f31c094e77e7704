// Package hcl provides the HCL implementation of config.Loader.
//
// The HCL form mirrors the YAML one:
//
//	headers {
//	  system = ["cmath"]
//	  user   = ["functor/all.h"]
//	}
//
//	keep        = ["^Y_P[TE]$"]
//	rename      = { Y_PT = "y_pt" }
//	calculation = { y_p = "Double_t; y_pt + y_pz" }
//
//	output "ATuple" {
//	  input     = "TupleB0/DecayTree"
//	  selection = ["d0_m > 1800"]
//	}
//
// Object attributes (rename, calculation) keep their source order. Unknown
// attributes inside an output block are passed through as Extra.
package hcl
