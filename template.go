package errorrules

import (
	"strconv"
	"strings"
)

// Segment is one piece of a parsed display template: either a literal run of
// text or a reference to a variant field by zero-based index.
type Segment struct {
	// Literal is the text to emit verbatim. Meaningful only when Field < 0.
	Literal string
	// Field is the zero-based field index, or -1 for a literal segment.
	Field int
}

// IsField reports whether the segment references a variant field.
func (s Segment) IsField() bool {
	return s.Field >= 0
}

func literalSegment(text string) Segment {
	return Segment{Literal: text, Field: -1}
}

func fieldSegment(index int) Segment {
	return Segment{Field: index}
}

// parseTemplate splits a display template into an ordered list of segments.
//
// Two placeholder styles exist and must not be mixed within one template:
//
//   - "{}" consumes the next entry of refs, in order. The number of "{}"
//     markers must equal len(refs).
//   - "{N}" names a field index inline. Inline templates take no refs list.
//
// "{{" and "}}" escape literal braces. Adjacent literal runs are merged, so
// a template with no markers parses to at most one segment. The parser knows
// nothing about the owning variant: index bounds against the variant's arity
// are checked by the descriptor builder, not here.
func parseTemplate(template string, refs []int) ([]Segment, error) {
	for _, r := range refs {
		if r < 0 {
			return nil, newTemplateError(KindMalformedTemplate, template,
				"field reference must not be negative, got "+strconv.Itoa(r))
		}
	}

	var (
		segments []Segment
		lit      strings.Builder
		next     int // next refs entry to consume
		inline   int // count of {N} markers seen
	)
	flush := func() {
		if lit.Len() > 0 {
			segments = append(segments, literalSegment(lit.String()))
			lit.Reset()
		}
	}

	for i := 0; i < len(template); {
		switch template[i] {
		case '{':
			if i+1 < len(template) && template[i+1] == '{' {
				lit.WriteByte('{')
				i += 2
				continue
			}
			end := strings.IndexByte(template[i:], '}')
			if end < 0 {
				return nil, newTemplateError(KindMalformedTemplate, template,
					"unterminated placeholder")
			}
			body := template[i+1 : i+end]
			i += end + 1

			if body == "" {
				if inline > 0 {
					return nil, newTemplateError(KindMalformedTemplate, template,
						"mixed placeholder styles: both \"{}\" and \"{N}\" markers")
				}
				if next >= len(refs) {
					return nil, newTemplateError(KindMalformedTemplate, template,
						"placeholder count exceeds field reference count "+strconv.Itoa(len(refs)))
				}
				flush()
				segments = append(segments, fieldSegment(refs[next]))
				next++
				continue
			}

			index, err := parseMarkerIndex(body)
			if err != nil {
				return nil, newTemplateError(KindMalformedTemplate, template,
					"invalid placeholder {"+body+"}: "+err.Error())
			}
			if next > 0 {
				return nil, newTemplateError(KindMalformedTemplate, template,
					"mixed placeholder styles: both \"{}\" and \"{N}\" markers")
			}
			flush()
			segments = append(segments, fieldSegment(index))
			inline++
		case '}':
			if i+1 < len(template) && template[i+1] == '}' {
				lit.WriteByte('}')
				i += 2
				continue
			}
			return nil, newTemplateError(KindMalformedTemplate, template,
				"unmatched '}'")
		default:
			lit.WriteByte(template[i])
			i++
		}
	}
	flush()

	if inline > 0 && len(refs) > 0 {
		return nil, newTemplateError(KindMalformedTemplate, template,
			"field references are not allowed with inline \"{N}\" markers")
	}
	if next != len(refs) {
		return nil, newTemplateError(KindMalformedTemplate, template,
			"placeholder count "+strconv.Itoa(next)+" does not match field reference count "+strconv.Itoa(len(refs)))
	}
	return segments, nil
}

// parseMarkerIndex parses the body of an inline "{N}" marker. Only plain
// decimal digits are accepted; signs and whitespace are malformed.
func parseMarkerIndex(body string) (int, error) {
	for i := 0; i < len(body); i++ {
		if body[i] < '0' || body[i] > '9' {
			return 0, strconv.ErrSyntax
		}
	}
	return strconv.Atoi(body)
}
