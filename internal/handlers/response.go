package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"tattoo-studio-api/pkg/lambda"
)

// corsPolicy describes the preflight answer of one function
type corsPolicy struct {
	methods string
	headers string
}

const preflightMaxAge = 86400

var (
	bookingsCORS = corsPolicy{methods: "GET, POST, PUT, OPTIONS", headers: "Content-Type, X-Auth-Token, X-User-Id"}
	contactCORS  = corsPolicy{methods: "POST, OPTIONS", headers: "Content-Type"}
	ordersCORS   = corsPolicy{methods: "GET, POST, PUT, OPTIONS", headers: "Content-Type, X-User-Id, X-Auth-Token, Authorization"}
	messagesCORS = corsPolicy{methods: "GET, POST, OPTIONS", headers: "Content-Type, X-User-Id, X-Auth-Token, Authorization"}
)

func corsHeaders() map[string]string {
	return map[string]string{"Access-Control-Allow-Origin": "*"}
}

// jsonResponse writes body as JSON with the CORS origin header
func jsonResponse(status int, body interface{}) (*lambda.Response, error) {
	return lambda.NewJSONResponse(status, body, corsHeaders())
}

func errorResponse(status int, message string) (*lambda.Response, error) {
	return jsonResponse(status, ErrorResponse{Error: message})
}

// preflightResponse answers an OPTIONS request with an empty body
func preflightResponse(policy corsPolicy) (*lambda.Response, error) {
	headers := corsHeaders()
	headers["Access-Control-Allow-Methods"] = policy.methods
	headers["Access-Control-Allow-Headers"] = policy.headers
	headers["Access-Control-Max-Age"] = strconv.Itoa(preflightMaxAge)
	return lambda.NewJSONResponse(http.StatusOK, nil, headers)
}

// requestMethod normalizes the event method, substituting fallback when the
// event carries none
func requestMethod(req *lambda.Request, fallback string) string {
	method := strings.ToUpper(strings.TrimSpace(req.Method))
	if method == "" {
		return fallback
	}
	return method
}

// decodeBody unmarshals a JSON body into v. An empty body leaves v untouched
// so that required-field validation reports what is missing.
func decodeBody(req *lambda.Request, v interface{}) error {
	if len(strings.TrimSpace(string(req.Body))) == 0 {
		return nil
	}
	return json.Unmarshal(req.Body, v)
}

// queryID parses an optional integer query parameter. ok is false when the
// parameter is absent.
func queryID(req *lambda.Request, name string) (id int64, ok bool, err error) {
	raw := strings.TrimSpace(req.Query(name))
	if raw == "" {
		return 0, false, nil
	}
	id, err = strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, true, err
	}
	return id, true, nil
}
