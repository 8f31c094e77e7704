// Package branches describes the structure of ntuple files: which trees they
// contain and the name and C++ type of every branch.
//
// The structure comes from a Lookup. FileLookup reads YAML dumps produced by
// an external ntuple inspector:
//
//	TupleB0/DecayTree:
//	  Y_PT: Double_t
//	  Y_PE: Double_t
//	  runNumber: uint32_t
//
// DumpNtuples combines a main ntuple with its friends.
package branches
