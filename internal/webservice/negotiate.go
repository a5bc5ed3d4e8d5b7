package webservice

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// defaultAccept is assumed when the client sends no Accept header.
const defaultAccept = "application/xml"

// serializerKey is the context key the middleware stores the negotiated
// serializer under.
const serializerKey = "webservice.serializer"

// ErrNotAcceptable is returned when neither the fmt token nor the Accept
// header selects a registered serializer.
var ErrNotAcceptable = errors.New("no acceptable serializer")

// Negotiator selects one response serializer per request from a fixed,
// ordered registry. The first registered serializer doubles as the error
// format when negotiation fails, so a 406 always has a deterministic body.
type Negotiator struct {
	serializers []Serializer
	byToken     map[string]Serializer
	byMIME      map[string]Serializer
	mimeTypes   []string
}

// NewNegotiator builds the registry. Tokens and MIME types must be unique;
// at least one serializer is required.
func NewNegotiator(serializers ...Serializer) (*Negotiator, error) {
	if len(serializers) == 0 {
		return nil, errors.New("at least one serializer is required")
	}

	n := &Negotiator{
		serializers: serializers,
		byToken:     make(map[string]Serializer, len(serializers)),
		byMIME:      make(map[string]Serializer, len(serializers)),
	}
	for _, s := range serializers {
		if _, dup := n.byToken[s.Fmt()]; dup {
			return nil, fmt.Errorf("duplicate format token %q", s.Fmt())
		}
		if _, dup := n.byMIME[s.MIMEType()]; dup {
			return nil, fmt.Errorf("duplicate MIME type %q", s.MIMEType())
		}
		n.byToken[s.Fmt()] = s
		n.byMIME[s.MIMEType()] = s
		n.mimeTypes = append(n.mimeTypes, s.MIMEType())
	}
	return n, nil
}

// Select picks a serializer for the request.
//
// An explicit fmt token takes precedence over header negotiation, and a
// token that is present but unrecognized is a hard failure: it does NOT
// fall back to the Accept header. Only an absent token reaches the
// header-negotiation path.
func (n *Negotiator) Select(fmtToken, acceptHeader string) (Serializer, error) {
	if fmtToken != "" {
		if s, ok := n.byToken[fmtToken]; ok {
			return s, nil
		}
		return nil, ErrNotAcceptable
	}

	if acceptHeader == "" {
		acceptHeader = defaultAccept
	}
	if mime := bestMatch(n.mimeTypes, acceptHeader); mime != "" {
		return n.byMIME[mime], nil
	}
	return nil, ErrNotAcceptable
}

// failureMessage enumerates what the client could have asked for.
func (n *Negotiator) failureMessage() string {
	tokens := make([]string, len(n.serializers))
	for i, s := range n.serializers {
		tokens[i] = s.Fmt()
	}
	return fmt.Sprintf(
		"invalid format requested; valid formats are: %s; valid content types are: %s",
		strings.Join(tokens, ", "),
		strings.Join(n.mimeTypes, ", "),
	)
}

// Middleware negotiates the response format for every request in the group
// and stashes the winner in the request context. On failure it writes the
// 406 itself, rendered by the first registered serializer, and aborts so no
// handler runs.
func (n *Negotiator) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		serializer, err := n.Select(c.Query("fmt"), c.GetHeader("Accept"))
		if err != nil {
			n.serializers[0].WriteError(c, http.StatusNotAcceptable, n.failureMessage())
			c.Abort()
			return
		}
		c.Set(serializerKey, serializer)
		c.Next()
	}
}

// Negotiated returns the serializer chosen for this request. The boolean is
// false when the middleware did not run.
func Negotiated(c *gin.Context) (Serializer, bool) {
	v, ok := c.Get(serializerKey)
	if !ok {
		return nil, false
	}
	s, ok := v.(Serializer)
	return s, ok
}

// MustSerializer is Negotiated for handlers that are always registered
// behind the middleware; it falls back to XML rather than panicking if the
// middleware was somehow skipped.
func MustSerializer(c *gin.Context) Serializer {
	if s, ok := Negotiated(c); ok {
		return s
	}
	return XMLSerializer{}
}
