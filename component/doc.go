// Package component defines the Component capability and container
// semantics the tui engine renders against, plus a small set of
// built-ins: Spacer, Text, PaddedBox, Input, SelectList.
//
// Every Component renders into a slice of lines whose visible width
// (per ansitext.VisibleColumns) equals the column budget it was given,
// when the component chooses to fill — an empty result is legal and
// means the component contributes zero rows this frame.
package component
