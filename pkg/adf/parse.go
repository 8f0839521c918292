package adf

import (
	"encoding/json"
	"math"

	"github.com/pkg/errors"
	"github.com/tidwall/gjson"
)

// Parse decodes an ADF JSON document. The root must be a "doc" node carrying
// an integer version.
func Parse(data []byte) (*Node, error) {
	if !gjson.ValidBytes(data) {
		return nil, errors.New("adf: invalid JSON")
	}
	return parseRoot(gjson.ParseBytes(data))
}

// ParseAt decodes the ADF document found at a gjson path inside data, for
// example "fields.description" in a Jira issue payload or
// "body.atlas_doc_format.value" in a Confluence page, where the document is
// itself a JSON string. An empty path is the same as Parse.
func ParseAt(data []byte, path string) (*Node, error) {
	if path == "" {
		return Parse(data)
	}
	if !gjson.ValidBytes(data) {
		return nil, errors.New("adf: invalid JSON")
	}
	res := gjson.GetBytes(data, path)
	if !res.Exists() {
		return nil, errors.Errorf("adf: no document at path %q", path)
	}
	return parseRoot(res)
}

func parseRoot(res gjson.Result) (*Node, error) {
	if res.Type == gjson.String {
		embedded := res.String()
		if !gjson.Valid(embedded) {
			return nil, errors.New("adf: embedded document is not valid JSON")
		}
		res = gjson.Parse(embedded)
	}
	if !res.IsObject() {
		return nil, invalidRoot("")
	}
	if kind := res.Get("type").String(); kind != KindDoc.String() {
		return nil, invalidRoot(kind)
	}
	version := res.Get("version")
	if version.Type != gjson.Number || version.Num != math.Trunc(version.Num) {
		return nil, errors.Wrap(ErrInvalidRoot, "missing integer version")
	}

	var doc Node
	if err := json.Unmarshal([]byte(res.Raw), &doc); err != nil {
		return nil, errors.Wrap(err, "adf: decode document")
	}
	return &doc, nil
}
