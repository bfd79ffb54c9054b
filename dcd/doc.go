// Package dcd trains linear L1- and L2-loss two-class support vector
// machines by dual coordinate descent.
//
// Data is a dense matrix with one sample per column and the label in the
// last row:
//
//	store, _ := dcd.NewSampleStore([][]float64{{1, 0}, {-1, 0}}, []float64{1, -1})
//	param := dcd.NewParameter(1, 1, dcd.L1_SVM, 100, 0, 1e-6)
//	model, err := dcd.Train(ctx, dcd.SVM_C, store, param)
//
// The bias is learned as the weight of a constant feature 1 appended to
// every sample.
package dcd
