package valueobject

import "strings"

// DocumentKind identifies a document slot in a KYC submission.
type DocumentKind struct {
	value     string
	mandatory bool
}

var (
	DocIdentityPrimary   = DocumentKind{"identity_primary", true}
	DocIdentitySecondary = DocumentKind{"identity_secondary", true}
	DocSelfie            = DocumentKind{"selfie", true}
	DocAddressProof      = DocumentKind{"address_proof", false}
	DocIncomeProof       = DocumentKind{"income_proof", false}
)

var validDocumentKinds = map[string]DocumentKind{
	"identity_primary":   DocIdentityPrimary,
	"identity_secondary": DocIdentitySecondary,
	"selfie":             DocSelfie,
	"address_proof":      DocAddressProof,
	"income_proof":       DocIncomeProof,
}

func NewDocumentKind(s string) (DocumentKind, error) {
	k, ok := validDocumentKinds[s]
	if !ok {
		return DocumentKind{}, Validationf("unknown document kind: %q", s)
	}
	return k, nil
}

// MandatoryDocumentKinds returns the kinds every submission attempt must carry.
func MandatoryDocumentKinds() []DocumentKind {
	return []DocumentKind{DocIdentityPrimary, DocIdentitySecondary, DocSelfie}
}

func (k DocumentKind) String() string { return k.value }

func (k DocumentKind) IsMandatory() bool { return k.mandatory }

// Documents maps a document kind to the caller-supplied storage reference.
type Documents map[DocumentKind]string

// ParseDocuments converts a kind-name keyed map into Documents, rejecting
// unknown kinds and blank references.
func ParseDocuments(raw map[string]string) (Documents, error) {
	docs := make(Documents, len(raw))
	for name, ref := range raw {
		kind, err := NewDocumentKind(name)
		if err != nil {
			return nil, err
		}
		ref = strings.TrimSpace(ref)
		if ref == "" {
			return nil, Validationf("document %s has an empty reference", name)
		}
		docs[kind] = ref
	}
	return docs, nil
}

// Validate checks that every mandatory document is present.
func (d Documents) Validate() error {
	var missing []string
	for _, kind := range MandatoryDocumentKinds() {
		if strings.TrimSpace(d[kind]) == "" {
			missing = append(missing, kind.String())
		}
	}
	if len(missing) > 0 {
		return Validationf("missing mandatory documents: %s", strings.Join(missing, ", "))
	}
	return nil
}

// Clone returns an independent copy.
func (d Documents) Clone() Documents {
	out := make(Documents, len(d))
	for k, v := range d {
		out[k] = v
	}
	return out
}

// Raw returns the documents keyed by kind name.
func (d Documents) Raw() map[string]string {
	out := make(map[string]string, len(d))
	for k, v := range d {
		out[k.String()] = v
	}
	return out
}
