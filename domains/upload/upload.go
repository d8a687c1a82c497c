package upload

import "context"

// MaxFileSize caps PDF uploads at 16 MB.
const MaxFileSize = 16 * 1024 * 1024

// Result describes a processed PDF upload.
type Result struct {
	FileID        uint
	Filename      string
	Summary       string
	ExtractedText string
	SizeLabel     string
	Message       string
}

// IUploadUsecase extracts and summarizes PDF content so it can seed a
// generation prompt.
type IUploadUsecase interface {
	ProcessPDF(ctx context.Context, filename string, data []byte) (Result, error)
}

// ContentPrompt turns a document summary into the prompt the caller
// feeds into the draft lifecycle. The caller triggers generation
// explicitly; nothing here simulates a UI action.
func ContentPrompt(summary string) string {
	return "Create a professional LinkedIn post based on the following content: " + summary
}
