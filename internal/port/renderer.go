package port

import "context"

// PDFRenderer turns an HTML page into a PDF document.
type PDFRenderer interface {
	RenderPDF(ctx context.Context, html string, landscape bool) ([]byte, error)
}
