// Package simulation produces synthetic historical shipping quotes.
//
// A record is built in a fixed order: categorical draws, physical
// attributes, cost, market rate, quoted price and finally the win outcome.
// Every random draw goes through an explicit *rand.Rand so datasets are
// reproducible for a given seed and worker count.
package simulation
