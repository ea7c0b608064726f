// Package device adapts Drift's platform services to the collaborators
// consumed by locationflow.
//
// Every adapter takes its platform dependency as an optional field and falls
// back to the Drift singleton, so production code can use the zero value
// while tests substitute a fake or install a fake native bridge.
package device
