package pdfcompositor

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image/png"
	"io"
	"time"

	"github.com/go-pdf/fpdf"
	"github.com/go-pdf/fpdf/contrib/gofpdi"
	"github.com/pkg/errors"
	"timesheet-backend/models"
)

// Layout is the signature placement policy. Offsets are in PDF device units
// (points) and anchor the signature to the bottom-right area of the page.
type Layout struct {
	TargetPageIndex   int
	ScaleFactor       float64
	XOffsetFromRight  float64
	YOffsetFromBottom float64
	CaptionGap        float64
	CaptionSize       float64
}

func DefaultLayout() Layout {
	return Layout{
		TargetPageIndex:   0,
		ScaleFactor:       0.3,
		XOffsetFromRight:  200,
		YOffsetFromBottom: 100,
		CaptionGap:        20,
		CaptionSize:       8,
	}
}

type Provider interface {
	// Compose embeds the base64-encoded PNG signature and a validation date
	// caption onto the target page and re-serializes the whole document.
	// The input slice is never modified.
	Compose(pdfData []byte, signatureB64 string, validatedAt time.Time) ([]byte, error)
}

func NewProvider(layout Layout) Provider {
	return &impl{
		layout: layout,
	}
}

type impl struct {
	layout Layout
}

func (i impl) Compose(pdfData []byte, signatureB64 string, validatedAt time.Time) (out []byte, err error) {
	// the pdf parser panics on broken input
	defer func() {
		if r := recover(); r != nil {
			out = nil
			err = errors.Wrapf(models.ErrMalformedDocument, "pdf parse panic: %v", r)
		}
	}()

	signature, err := base64.StdEncoding.DecodeString(signatureB64)
	if err != nil {
		return nil, errors.Wrap(models.ErrInvalidInput, "signature payload is not valid base64")
	}
	sigCfg, err := png.DecodeConfig(bytes.NewReader(signature))
	if err != nil {
		return nil, errors.Wrap(models.ErrInvalidInput, "signature payload is not a png image")
	}

	pdf := fpdf.NewCustom(&fpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "pt",
		SizeStr:        "A4",
	})
	pdf.SetFont("Helvetica", "", i.layout.CaptionSize)
	if pdf.Error() != nil {
		return nil, pdf.Error()
	}

	importer := gofpdi.NewImporter()
	rs := io.ReadSeeker(bytes.NewReader(pdfData))
	firstTpl := importer.ImportPageFromStream(pdf, &rs, 1, "/MediaBox")
	if pdf.Error() != nil {
		return nil, errors.Wrap(models.ErrMalformedDocument, pdf.Error().Error())
	}
	pageSizes := importer.GetPageSizes()
	if len(pageSizes) == 0 {
		return nil, errors.Wrap(models.ErrMalformedDocument, "document has no pages")
	}

	for pageNo := 1; pageNo <= len(pageSizes); pageNo++ {
		box, ok := pageSizes[pageNo]["/MediaBox"]
		if !ok {
			return nil, errors.Wrapf(models.ErrMalformedDocument, "page %v has no media box", pageNo)
		}
		pageW := box["w"]
		pageH := box["h"]
		pdf.AddPageFormat("P", fpdf.SizeType{Wd: pageW, Ht: pageH})
		tpl := firstTpl
		if pageNo > 1 {
			tpl = importer.ImportPageFromStream(pdf, &rs, pageNo, "/MediaBox")
		}
		importer.UseImportedTemplate(pdf, tpl, 0, 0, pageW, pageH)

		if pageNo == i.layout.TargetPageIndex+1 {
			i.drawSignature(pdf, signature, sigCfg.Width, sigCfg.Height, pageW, pageH, validatedAt)
		}
	}
	if pdf.Error() != nil {
		return nil, errors.Wrap(models.ErrMalformedDocument, pdf.Error().Error())
	}

	buf := new(bytes.Buffer)
	err = pdf.Output(buf)
	if err != nil {
		return nil, errors.Wrap(err, "pdf serialization error")
	}
	return buf.Bytes(), nil
}

func (i impl) drawSignature(pdf *fpdf.Fpdf, signature []byte, pxWidth, pxHeight int, pageW, pageH float64, validatedAt time.Time) {
	sigW := float64(pxWidth) * i.layout.ScaleFactor
	sigH := float64(pxHeight) * i.layout.ScaleFactor
	// bottom-right anchor, converted to fpdf's top-left origin
	sigX := pageW - i.layout.XOffsetFromRight
	sigY := pageH - i.layout.YOffsetFromBottom - sigH

	options := fpdf.ImageOptions{
		ImageType: "PNG",
	}
	pdf.RegisterImageOptionsReader("manager_signature.png", options, bytes.NewReader(signature))
	pdf.ImageOptions("manager_signature.png", sigX, sigY, sigW, sigH, false, options, 0, "")

	tr := pdf.UnicodeTranslatorFromDescriptor("")
	caption := fmt.Sprintf("Validé le %v", validatedAt.Format("02/01/2006"))
	pdf.SetFont("Helvetica", "", i.layout.CaptionSize)
	pdf.SetTextColor(0, 0, 0)
	pdf.Text(sigX, pageH-(i.layout.YOffsetFromBottom-i.layout.CaptionGap), tr(caption))
}
