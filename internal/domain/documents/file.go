package documents

import (
	"bytes"
	"fmt"
	"mime"
	"net/http"
	"path/filepath"
	"strings"

	"pet-adoption/internal/platform/apperr"

	pdf "github.com/ledongthuc/pdf"
)

const (
	ContentTypePDF  = "application/pdf"
	ContentTypeJPEG = "image/jpeg"
	ContentTypePNG  = "image/png"
)

var allowedContentTypes = map[string]string{
	ContentTypePDF:  ".pdf",
	ContentTypeJPEG: ".jpg",
	ContentTypePNG:  ".png",
}

// DetectContentType prioriza el header declarado y cae a sniffing si viene vacío u octet-stream.
func DetectContentType(declared string, data []byte) string {
	if mt, _, err := mime.ParseMediaType(declared); err == nil && mt != "" && mt != "application/octet-stream" {
		return strings.ToLower(mt)
	}
	mt, _, _ := mime.ParseMediaType(http.DetectContentType(data))
	return mt
}

// ValidateFile verifica tipo, tamaño y, para PDFs, que el archivo se pueda abrir y tenga páginas.
func ValidateFile(contentType string, data []byte, maxBytes int64) error {
	if len(data) == 0 {
		return apperr.Validation("file is empty")
	}
	if maxBytes > 0 && int64(len(data)) > maxBytes {
		return apperr.Validationf("file exceeds %d bytes", maxBytes)
	}
	if _, ok := allowedContentTypes[contentType]; !ok {
		return apperr.Validationf("content type %q not allowed (pdf, jpeg or png)", contentType)
	}

	if contentType == ContentTypePDF {
		if err := checkPDF(data); err != nil {
			return apperr.Validation(err.Error())
		}
	}
	return nil
}

func checkPDF(data []byte) (err error) {
	// El parser entra en panic con algunos archivos corruptos.
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("pdf is not readable")
		}
	}()

	doc, rerr := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if rerr != nil {
		return fmt.Errorf("pdf is not readable: %v", rerr)
	}
	if doc.NumPage() < 1 {
		return fmt.Errorf("pdf has no pages")
	}
	return nil
}

// ObjectKey arma la key de storage: documents/<applicant>/<type>/<id><ext>.
func ObjectKey(applicantID string, t Type, id, contentType, fileName string) string {
	ext := allowedContentTypes[contentType]
	if e := strings.ToLower(filepath.Ext(fileName)); e != "" && ext == "" {
		ext = e
	}
	return fmt.Sprintf("documents/%s/%s/%s%s", applicantID, t, id, ext)
}
