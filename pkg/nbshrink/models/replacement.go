package models

// ReplacementRecord marks a code cell whose image output was moved out of the
// notebook. The synthetic markdown cell referencing the image sits at
// Index+1.
type ReplacementRecord struct {
	// Index is the position of the output-stripped code cell in the
	// rewritten cell sequence.
	Index int
	// Image is the counter value of the image file produced for the cell.
	Image int
}
