package utilities

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"

	"github.com/gin-gonic/gin"
)

// SimulateAPICall runs a single handler against a synthetic JSON request,
// outside any router. It returns the recorder and the decoded response body.
func SimulateAPICall(
	handler gin.HandlerFunc,
	route string,
	method string,
	body interface{},
) (*httptest.ResponseRecorder, map[string]interface{}, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, nil, err
	}

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)

	c.Request, err = http.NewRequest(method, route, bytes.NewReader(payload))
	if err != nil {
		return nil, nil, err
	}
	c.Request.Header.Set("Content-Type", "application/json")

	handler(c)

	// Unmarshal from a copy so callers can still read the recorder body.
	resp := map[string]interface{}{}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		return rec, nil, err
	}
	return rec, resp, nil
}
