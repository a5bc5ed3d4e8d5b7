package webservice

import (
	"encoding/xml"

	"github.com/gin-gonic/gin"
)

// Serializer renders web-service response bodies in one wire format. Every
// serializer must be able to render an error body, because the negotiator
// falls back to the first registered serializer when negotiation itself
// fails and still owes the client a structured 406.
type Serializer interface {
	// Fmt is the short format token matched against the fmt query
	// parameter ("xml", "json").
	Fmt() string
	// MIMEType is the content type matched against the Accept header.
	MIMEType() string
	Write(c *gin.Context, status int, v any)
	WriteError(c *gin.Context, status int, message string)
}

// wsError is the error body shape shared by all serializers.
type wsError struct {
	XMLName xml.Name `xml:"error" json:"-"`
	Message string   `xml:"text" json:"error"`
}

type XMLSerializer struct{}

func (XMLSerializer) Fmt() string      { return "xml" }
func (XMLSerializer) MIMEType() string { return "application/xml" }

func (XMLSerializer) Write(c *gin.Context, status int, v any) {
	c.XML(status, v)
}

func (XMLSerializer) WriteError(c *gin.Context, status int, message string) {
	c.XML(status, wsError{Message: message})
}

type JSONSerializer struct{}

func (JSONSerializer) Fmt() string      { return "json" }
func (JSONSerializer) MIMEType() string { return "application/json" }

func (JSONSerializer) Write(c *gin.Context, status int, v any) {
	c.JSON(status, v)
}

func (JSONSerializer) WriteError(c *gin.Context, status int, message string) {
	c.JSON(status, wsError{Message: message})
}
