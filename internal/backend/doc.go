// Package backend chooses between the two documentation generators and turns
// a choice plus compiled flags into a concrete process.Command.
//
// The swift-docc-plugin path works wherever Swift does. The xcodebuild path
// only exists on macOS and needs a scheme and a destination. A Backend value
// is one or the other, never both, so the parameters of the unused path
// cannot leak into an invocation.
package backend
