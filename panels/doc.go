// Package panels builds the editing-screen helpers that sit on top of an
// Editor: where the typography panel reads and writes, how the custom CSS
// box presents theme CSS, and which panel groups a block shows.
package panels
