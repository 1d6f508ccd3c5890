package email

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/smallbiznis/scribe/internal/document/domain"
)

var typeLabels = map[domain.DocumentType]string{
	domain.TypeInvoice:       "Facture",
	domain.TypeQuote:         "Devis",
	domain.TypeMileage:       "Note de frais kilométriques",
	domain.TypeRentReceipt:   "Quittance de loyer",
	domain.TypeRentalCharges: "Régularisation des charges",
}

var summaryTmpl = template.Must(template.New("document_summary").Parse(`<html>
<body>
<p>Bonjour,</p>
<p>Veuillez trouver votre document <strong>{{.Label}} {{.Number}}</strong>.</p>
{{if .PDFPath}}<p>Le document PDF est disponible : {{.PDFPath}}</p>{{end}}
<p>Cordialement,<br>{{.Sender}}</p>
</body>
</html>`))

// DocumentSummary renders the notification mail for a generated document.
func DocumentSummary(doc *domain.Document, sender string) (subject, body string, err error) {
	label, ok := typeLabels[doc.DocumentType]
	if !ok {
		return "", "", fmt.Errorf("no mail summary for document type %q", doc.DocumentType)
	}

	var buf bytes.Buffer
	err = summaryTmpl.Execute(&buf, map[string]string{
		"Label":   label,
		"Number":  doc.DocumentNumber,
		"PDFPath": doc.PDFPath,
		"Sender":  sender,
	})
	if err != nil {
		return "", "", err
	}
	return fmt.Sprintf("%s %s", label, doc.DocumentNumber), buf.String(), nil
}
