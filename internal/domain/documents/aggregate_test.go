package documents

import (
	"bytes"
	"fmt"
	"testing"

	"pet-adoption/internal/platform/apperr"
)

func doc(t Type, st Status) Document {
	return Document{ID: string(t) + "-" + string(st), ApplicantID: "user-1", Type: t, Status: st}
}

func TestAggregate_Rules(t *testing.T) {
	cases := []struct {
		name string
		docs []Document
		want AggregateStatus
	}{
		{"empty", nil, AggregateEmpty},
		{"one pending", []Document{doc(TypeIdentification, StatusPending)}, AggregateInReview},
		{
			"two approved one pending",
			[]Document{
				doc(TypeIdentification, StatusApproved),
				doc(TypeProofOfAddress, StatusApproved),
				doc(TypeNationalID, StatusPending),
			},
			AggregateInReview,
		},
		{
			"all approved",
			[]Document{
				doc(TypeIdentification, StatusApproved),
				doc(TypeProofOfAddress, StatusApproved),
				doc(TypeNationalID, StatusApproved),
			},
			AggregateApproved,
		},
		{
			"rejected wins over pending and approved",
			[]Document{
				doc(TypeIdentification, StatusApproved),
				doc(TypeProofOfAddress, StatusPending),
				doc(TypeNationalID, StatusRejected),
			},
			AggregateRejected,
		},
		{
			"approved but missing required",
			[]Document{
				doc(TypeIdentification, StatusApproved),
				doc(TypeProofOfAddress, StatusApproved),
			},
			AggregateIncomplete,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Aggregate(tc.docs, AllTypes); got != tc.want {
				t.Fatalf("Aggregate = %s, want %s", got, tc.want)
			}
		})
	}
}

func TestAggregate_IsPure(t *testing.T) {
	docs := []Document{
		doc(TypeIdentification, StatusApproved),
		doc(TypeProofOfAddress, StatusApproved),
		doc(TypeNationalID, StatusApproved),
	}
	first := Aggregate(docs, AllTypes)
	for i := 0; i < 5; i++ {
		if got := Aggregate(docs, AllTypes); got != first {
			t.Fatalf("call %d returned %s, first was %s", i, got, first)
		}
	}
}

func TestAggregate_AddingApprovedKeepsApproved(t *testing.T) {
	docs := []Document{
		doc(TypeIdentification, StatusApproved),
		doc(TypeProofOfAddress, StatusApproved),
		doc(TypeNationalID, StatusApproved),
	}
	docs = append(docs, Document{ID: "extra", Type: TypeIdentification, Status: StatusApproved})
	if got := Aggregate(docs, AllTypes); got != AggregateApproved {
		t.Fatalf("expected aprobado, got %s", got)
	}
}

func TestAggregate_AddingRejectedAlwaysRejects(t *testing.T) {
	sets := [][]Document{
		nil,
		{doc(TypeIdentification, StatusPending)},
		{
			doc(TypeIdentification, StatusApproved),
			doc(TypeProofOfAddress, StatusApproved),
			doc(TypeNationalID, StatusApproved),
		},
	}
	for i, set := range sets {
		withRejected := append(append([]Document{}, set...), doc(TypeProofOfAddress, StatusRejected))
		if got := Aggregate(withRejected, AllTypes); got != AggregateRejected {
			t.Fatalf("set %d: expected rechazado, got %s", i, got)
		}
	}
}

func TestParseTypes(t *testing.T) {
	if _, ok := ParseTypes([]string{"identification", "passport"}); ok {
		t.Fatalf("expected unknown type to fail")
	}
	got, ok := ParseTypes([]string{" National_ID "})
	if !ok || len(got) != 1 || got[0] != TypeNationalID {
		t.Fatalf("unexpected parse result %v %v", got, ok)
	}
}

// minimalPDF arma un PDF de una página con la tabla xref correcta.
func minimalPDF() []byte {
	var buf bytes.Buffer
	buf.WriteString("%PDF-1.4\n")

	objects := []string{
		"<< /Type /Catalog /Pages 2 0 R >>",
		"<< /Type /Pages /Kids [3 0 R] /Count 1 >>",
		"<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] >>",
	}
	offsets := make([]int, 0, len(objects))
	for i, body := range objects {
		offsets = append(offsets, buf.Len())
		fmt.Fprintf(&buf, "%d 0 obj\n%s\nendobj\n", i+1, body)
	}

	xref := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n", len(objects)+1)
	buf.WriteString("0000000000 65535 f \n")
	for _, off := range offsets {
		fmt.Fprintf(&buf, "%010d 00000 n \n", off)
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n", len(objects)+1, xref)
	return buf.Bytes()
}

func TestValidateFile(t *testing.T) {
	png := []byte("\x89PNG\r\n\x1a\n0000")

	cases := []struct {
		name        string
		contentType string
		data        []byte
		max         int64
		wantErr     bool
	}{
		{"valid pdf", ContentTypePDF, minimalPDF(), 1 << 20, false},
		{"valid png", ContentTypePNG, png, 1 << 20, false},
		{"empty", ContentTypePNG, nil, 1 << 20, true},
		{"too big", ContentTypePNG, png, 4, true},
		{"not allowed", "text/plain", []byte("hello"), 1 << 20, true},
		{"broken pdf", ContentTypePDF, []byte("%PDF-1.4 garbage"), 1 << 20, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidateFile(tc.contentType, tc.data, tc.max)
			if tc.wantErr {
				if !apperr.IsValidation(err) {
					t.Fatalf("expected validation error, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestDetectContentType(t *testing.T) {
	if got := DetectContentType("image/png; charset=binary", nil); got != ContentTypePNG {
		t.Fatalf("declared type should win, got %q", got)
	}
	if got := DetectContentType("application/octet-stream", minimalPDF()); got != ContentTypePDF {
		t.Fatalf("expected sniffed pdf, got %q", got)
	}
}

func TestObjectKey(t *testing.T) {
	got := ObjectKey("user-1", TypeNationalID, "doc-1", ContentTypePDF, "dni.PDF")
	if got != "documents/user-1/national_id/doc-1.pdf" {
		t.Fatalf("unexpected key %q", got)
	}
}
