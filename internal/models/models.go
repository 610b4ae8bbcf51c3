package models

import (
	"fmt"
	"net/url"
	"strconv"
)

// TextType selects the flavour of placeholder text the API generates.
type TextType string

const (
	AllMeat       TextType = "all-meat"
	MeatAndFiller TextType = "meat-and-filler"
)

// ParseTextType returns the TextType named by s.
func ParseTextType(s string) (TextType, error) {
	switch t := TextType(s); t {
	case AllMeat, MeatAndFiller:
		return t, nil
	}
	return "", fmt.Errorf("invalid type %q: must be one of %s, %s", s, AllMeat, MeatAndFiller)
}

// Format is the response encoding requested from the API.
type Format string

const (
	FormatJSON Format = "json"
	FormatText Format = "text"
	FormatHTML Format = "html"
)

// ParseFormat returns the Format named by s.
func ParseFormat(s string) (Format, error) {
	switch f := Format(s); f {
	case FormatJSON, FormatText, FormatHTML:
		return f, nil
	}
	return "", fmt.Errorf("invalid format %q: must be one of %s, %s, %s", s, FormatJSON, FormatText, FormatHTML)
}

// RequestParameters holds the validated query parameters for one API call.
// Build it with NewRequestParameters and treat it as read-only afterwards.
type RequestParameters struct {
	Type           TextType `json:"type"`
	Paragraphs     int      `json:"paras"`
	StartWithLorem bool     `json:"startWithLorem"`
	Format         Format   `json:"format"`
	Sentences      *int     `json:"sentences,omitempty"`
}

// NewRequestParameters validates its inputs and returns the parameter set.
// A nil sentences means the flag was not given.
func NewRequestParameters(typ TextType, paras int, startWithLorem bool, format Format, sentences *int) (RequestParameters, error) {
	if _, err := ParseTextType(string(typ)); err != nil {
		return RequestParameters{}, err
	}
	if _, err := ParseFormat(string(format)); err != nil {
		return RequestParameters{}, err
	}
	if paras < 0 {
		return RequestParameters{}, fmt.Errorf("paras must not be negative, got %d", paras)
	}

	p := RequestParameters{
		Type:           typ,
		Paragraphs:     paras,
		StartWithLorem: startWithLorem,
		Format:         format,
	}
	if sentences != nil {
		if *sentences < 1 {
			return RequestParameters{}, fmt.Errorf("sentences must be at least 1, got %d", *sentences)
		}
		n := *sentences
		p.Sentences = &n
	}
	return p, nil
}

// Query renders the parameters as the API's query string values. sentences
// is sent alongside paras; the API gives it precedence.
func (p RequestParameters) Query() url.Values {
	q := url.Values{}
	q.Set("type", string(p.Type))
	q.Set("paras", strconv.Itoa(p.Paragraphs))
	if p.StartWithLorem {
		q.Set("start-with-lorem", "1")
	} else {
		q.Set("start-with-lorem", "0")
	}
	q.Set("format", string(p.Format))
	if p.Sentences != nil {
		q.Set("sentences", strconv.Itoa(*p.Sentences))
	}
	return q
}

// ResponseBody is a decoded API payload. The set of implementations is
// closed: PlainText, HTMLFragment and JSONStringArray.
type ResponseBody interface {
	Format() Format
	responseBody()
}

// PlainText is the body of a format=text response.
type PlainText string

// HTMLFragment is the body of a format=html response.
type HTMLFragment string

// JSONStringArray is the body of a format=json response, one string per
// paragraph.
type JSONStringArray []string

func (PlainText) Format() Format       { return FormatText }
func (HTMLFragment) Format() Format    { return FormatHTML }
func (JSONStringArray) Format() Format { return FormatJSON }

func (PlainText) responseBody()       {}
func (HTMLFragment) responseBody()    {}
func (JSONStringArray) responseBody() {}

type CountResult struct {
	Words      int `json:"words"`
	Characters int `json:"characters"`
}

type Result struct {
	Params RequestParameters `json:"params"`
	Data   ResponseBody      `json:"data"`
	CountResult
	TimeElapsed int `json:"timeElapsedMs"`
}
