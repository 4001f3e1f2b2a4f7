package extraction

import (
	"encoding/json"
	"errors"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/ternarybob/finsight/internal/models"
)

// fencedJSONRe matches a markdown-fenced JSON block. Models routinely
// wrap their output this way despite being told not to.
var fencedJSONRe = regexp.MustCompile("(?s)```json\\s*(.*?)\\s*```")

// validate checks the required-field invariants of AnalysisResult via the
// struct tags in internal/models. Field errors are reported with JSON
// field names so diagnostics match the wire schema.
var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// checkedFields are the field classes whose shape the parser enforces.
// A JSON type mismatch on one of these is an incomplete-schema failure;
// mismatches anywhere else surface as malformed JSON. Nothing deeper is
// coerced - string-typed numerics outside these classes are rejected by
// the JSON decoder rather than silently converted.
var checkedFields = []string{
	"companyName",
	"financialsLocal",
	"analysis.ratioAnalysis.summary",
	"analysis.trendAnalysis.chartData",
}

// ParseAnalysis turns raw model response text into a validated
// AnalysisResult.
//
// The payload is the inner text of a fenced JSON block when one exists,
// otherwise the trimmed raw text verbatim. Parse failures return a
// *MalformedJSONError carrying the offending text; structural failures
// (missing companyName, financialsLocal figures or unit, ratio summary,
// or a missing/non-sequence chartData) return an *IncompleteSchemaError
// naming the field class. A revenue of exactly zero is present, not
// missing.
//
// This function is pure and synchronous; callers own diagnostic logging.
func ParseAnalysis(raw string) (*models.AnalysisResult, error) {
	payload := strings.TrimSpace(raw)
	if match := fencedJSONRe.FindStringSubmatch(raw); match != nil {
		payload = strings.TrimSpace(match[1])
	}

	var result models.AnalysisResult
	if err := json.Unmarshal([]byte(payload), &result); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			for _, field := range checkedFields {
				if typeErr.Field == field || strings.HasPrefix(typeErr.Field, field+".") {
					return nil, &IncompleteSchemaError{Field: typeErr.Field, Raw: payload}
				}
			}
		}
		return nil, &MalformedJSONError{Raw: payload, Err: err}
	}

	if err := validate.Struct(&result); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
			return nil, &IncompleteSchemaError{
				Field: fieldClass(fieldErrs[0]),
				Raw:   payload,
			}
		}
		return nil, &MalformedJSONError{Raw: payload, Err: err}
	}

	return &result, nil
}

// fieldClass renders a validator error as a wire-schema field path,
// e.g. "AnalysisResult.financialsLocal.revenue" -> "financialsLocal.revenue".
func fieldClass(fe validator.FieldError) string {
	ns := fe.Namespace()
	if idx := strings.Index(ns, "."); idx >= 0 {
		return ns[idx+1:]
	}
	return ns
}
