// Package training fits the two pricing models from the historical quote
// table: a logistic win-probability classifier and a ridge market-rate
// regressor. Both carry their own preprocessing so a saved artifact is
// self-contained.
package training
