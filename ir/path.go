package ir

import (
	"bytes"
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// Segment is one step of a Path: exactly one of Field or Index is set.
type Segment struct {
	Field *string
	Index *int
}

func FieldSegment(f string) Segment {
	return Segment{Field: &f}
}

func IndexSegment(i int) Segment {
	return Segment{Index: &i}
}

func (s Segment) IsField() bool { return s.Field != nil }
func (s Segment) IsIndex() bool { return s.Index != nil }

func (s Segment) String() string {
	switch {
	case s.Field != nil:
		return "." + pathString(*s.Field)
	case s.Index != nil:
		return "[" + strconv.Itoa(*s.Index) + "]"
	default:
		return ""
	}
}

func (s Segment) Equal(o Segment) bool {
	switch {
	case s.Field != nil:
		return o.Field != nil && *s.Field == *o.Field
	case s.Index != nil:
		return o.Index != nil && *s.Index == *o.Index
	default:
		return o.Field == nil && o.Index == nil
	}
}

// Path addresses a node within a tree.  The empty path is the root.
type Path []Segment

func (p Path) String() string {
	buf := bytes.NewBuffer([]byte{'$'})
	for _, seg := range p {
		buf.WriteString(seg.String())
	}
	return buf.String()
}

func (p Path) Equal(o Path) bool {
	return slices.EqualFunc(p, o, Segment.Equal)
}

// Field returns a new path extending p with field f.
func (p Path) Field(f string) Path {
	return append(slices.Clip(p), FieldSegment(f))
}

// Index returns a new path extending p with index i.
func (p Path) Index(i int) Path {
	return append(slices.Clip(p), IndexSegment(i))
}

// Parent returns p without its last segment.  The parent of the root is
// the root.
func (p Path) Parent() Path {
	if len(p) == 0 {
		return nil
	}
	return slices.Clip(p[:len(p)-1])
}

func (p Path) Last() (Segment, bool) {
	if len(p) == 0 {
		return Segment{}, false
	}
	return p[len(p)-1], true
}

func (p Path) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

func (p *Path) UnmarshalText(d []byte) error {
	pp, err := ParsePath(string(d))
	if err != nil {
		return err
	}
	*p = pp
	return nil
}

func MustParsePath(p string) Path {
	res, err := ParsePath(p)
	if err != nil {
		panic(err)
	}
	return res
}

// ParsePath parses the text form of a path, such as $.a[0].'b.c'.
func ParsePath(p string) (Path, error) {
	if len(p) == 0 || p[0] != '$' {
		return nil, fmt.Errorf("%w: path %q should start with '$'", ErrBadPath, p)
	}
	res := Path{}
	frag := p[1:]
	for len(frag) != 0 {
		switch frag[0] {
		case '.':
			field, rest, err := parseField(frag[1:])
			if err != nil {
				return nil, fmt.Errorf("%w: %q: %w", ErrBadPath, p, err)
			}
			res = append(res, FieldSegment(field))
			frag = rest
		case '[':
			i := strings.IndexByte(frag[1:], ']')
			if i == -1 {
				return nil, fmt.Errorf("%w: %q: expected '[' <index> ']'", ErrBadPath, p)
			}
			index, err := parseIndex(frag[1 : i+1])
			if err != nil {
				return nil, fmt.Errorf("%w: %q: %w", ErrBadPath, p, err)
			}
			res = append(res, IndexSegment(index))
			frag = frag[i+2:]
		default:
			return nil, fmt.Errorf("%w: %q: expected '.' or '['", ErrBadPath, p)
		}
	}
	return res, nil
}

func parseIndex(is string) (int, error) {
	u64, err := strconv.ParseUint(is, 10, 31)
	if err != nil {
		return 0, err
	}
	return int(u64), nil
}

func parseField(frag string) (field, rest string, err error) {
	if len(frag) == 0 {
		return "", "", fmt.Errorf("expected field at end of string")
	}
	if frag[0] != '\'' {
		i := strings.IndexAny(frag, ".[")
		if i == -1 {
			return frag, "", nil
		}
		if i == 0 {
			return "", "", fmt.Errorf("empty field must be quoted")
		}
		return frag[:i], frag[i:], nil
	}
	escaped := false
	res := make([]byte, 0, len(frag))
	for i := 1; i < len(frag); i++ {
		c := frag[i]
		switch {
		case escaped:
			escaped = false
			res = append(res, c)
		case c == '\\':
			escaped = true
		case c == '\'':
			return string(res), frag[i+1:], nil
		default:
			res = append(res, c)
		}
	}
	return "", "", fmt.Errorf("end of string scanning for \"'\"")
}

func pathString(f string) string {
	if f != "" && strings.IndexAny(f, "'.*$[]\\ ") == -1 {
		return f
	}
	r := strings.NewReplacer("\\", "\\\\", "'", "\\'")
	return "'" + r.Replace(f) + "'"
}

// Resolve returns the node at p in tree.  It fails with ErrInvalidPath if
// a segment cannot be followed.
func Resolve(tree *Node, p Path) (*Node, error) {
	res := tree
	for i, seg := range p {
		switch {
		case seg.Field != nil:
			if res.typ != ObjectType {
				return nil, fmt.Errorf("%w: %s: expected object, got %s", ErrInvalidPath, p[:i], res.typ)
			}
			next, ok := res.Get(*seg.Field)
			if !ok {
				return nil, fmt.Errorf("%w: %s: no field %q", ErrInvalidPath, p[:i], *seg.Field)
			}
			res = next
		case seg.Index != nil:
			if res.typ != ArrayType {
				return nil, fmt.Errorf("%w: %s: expected array, got %s", ErrInvalidPath, p[:i], res.typ)
			}
			next, ok := res.Index(*seg.Index)
			if !ok {
				return nil, fmt.Errorf("%w: %s: index out of bounds %d (len %d)", ErrInvalidPath, p[:i], *seg.Index, res.Len())
			}
			res = next
		default:
			return nil, fmt.Errorf("%w: %s: empty segment", ErrInvalidPath, p[:i])
		}
	}
	return res, nil
}

func (y *Node) GetPath(p string) (*Node, error) {
	pp, err := ParsePath(p)
	if err != nil {
		return nil, err
	}
	return Resolve(y, pp)
}
