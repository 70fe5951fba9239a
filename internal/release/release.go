// Package release models the two press-release input forms as explicit
// variants and builds the payload sent to the generation webhook.
package release

import (
	"errors"
	"fmt"
	"strings"
)

// Kind names a release variant.
type Kind string

const (
	KindProduct Kind = "product"
	KindEvent   Kind = "event"
)

// Label is the Korean name the webhook and the form use for the kind.
func (k Kind) Label() string {
	switch k {
	case KindProduct:
		return "제품 출시/리뷰 보도자료"
	case KindEvent:
		return "이벤트/행사 보도자료"
	default:
		return string(k)
	}
}

// Kinds lists the variants in form order.
func Kinds() []Kind { return []Kind{KindProduct, KindEvent} }

var ErrUnknownKind = errors.New("unknown release kind")

// ParseKind accepts the short name or the Korean label.
func ParseKind(s string) (Kind, error) {
	s = strings.TrimSpace(s)
	for _, k := range Kinds() {
		if s == string(k) || s == k.Label() {
			return k, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownKind, s)
}

// TypeKey is the payload key carrying the kind label.
const TypeKey = "보도자료_유형"

// Field is one form input with its current value.
type Field struct {
	Name        string // form/YAML name
	Key         string // webhook payload key
	Display     string // form label
	Required    bool
	Multiline   bool
	Placeholder string
	Value       string
}

// Release is implemented by *Product and *Event.
type Release interface {
	Kind() Kind
	Title() string
	Fields() []Field
	Validate() error
	Payload() map[string]string
}

// ValidationError lists required fields left empty, by payload key in form order.
type ValidationError struct {
	Missing []string
}

func (e *ValidationError) Error() string {
	return "다음 필수 항목을 입력해주세요: " + strings.Join(e.Missing, ", ")
}

func validate(fields []Field) error {
	var missing []string
	for _, f := range fields {
		if f.Required && strings.TrimSpace(f.Value) == "" {
			missing = append(missing, f.Key)
		}
	}
	if len(missing) > 0 {
		return &ValidationError{Missing: missing}
	}
	return nil
}

func payload(k Kind, fields []Field) map[string]string {
	out := make(map[string]string, len(fields)+1)
	out[TypeKey] = k.Label()
	for _, f := range fields {
		out[f.Key] = f.Value
	}
	return out
}

// Values returns the form values of r keyed by field name.
func Values(r Release) map[string]string {
	fields := r.Fields()
	out := make(map[string]string, len(fields))
	for _, f := range fields {
		out[f.Name] = f.Value
	}
	return out
}

// FromValues builds and validates a release of kind k from values keyed by
// field name. Unknown names are ignored.
func FromValues(k Kind, v map[string]string) (Release, error) {
	switch k {
	case KindProduct:
		return NewProduct(Product{
			TitleText:   v["title"],
			Intro:       v["intro"],
			ProductName: v["product_name"],
			ReleaseDate: v["release_date"],
			Category:    v["category"],
			Target:      v["target"],
			SalesPoints: v["sales_points"],
			Design:      v["design"],
			Specs:       v["specs"],
			PriceInfo:   v["price_info"],
			Closing:     v["closing"],
		})
	case KindEvent:
		return NewEvent(Event{
			TitleText:      v["title"],
			Intro:          v["intro"],
			EventName:      v["event_name"],
			Period:         v["period"],
			Details:        v["details"],
			TargetProducts: v["target_products"],
			Notes:          v["notes"],
			Closing:        v["closing"],
		})
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, string(k))
	}
}

// Empty returns the blank form for kind k without validating it.
func Empty(k Kind) (Release, error) {
	switch k {
	case KindProduct:
		return &Product{}, nil
	case KindEvent:
		return &Event{}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, string(k))
	}
}
