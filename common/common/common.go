package common

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"regexp"
)

func GetEnvWithDefault(key string, defaultValue string) string {
	value, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	return value
}

func GetEnvRequired(key string) string {
	value, exists := os.LookupEnv(key)
	if !exists {
		panic(fmt.Sprintf("%s MUST be provided as an environmental variable", key))
	}
	return value
}

type JsonType int64

const (
	Body JsonType = iota
	Header
)

// RestrictRequestJson replaces the values of sensitive keys before the
// payload is written to the log sink.
func RestrictRequestJson(body string, jsonType JsonType) string {
	sensitiveBodyKeys := []string{"password", "token", "secret"}
	sensitiveHeaderKeys := []string{"token", "Authorization"}
	var keys []string
	switch jsonType {
	case Body:
		keys = sensitiveBodyKeys
	case Header:
		keys = sensitiveHeaderKeys
	}
	for _, key := range keys {
		m := regexp.MustCompile(fmt.Sprintf(`"%s": ?".*"|"%s": ?\[.*\]`, key, key))
		body = m.ReplaceAllString(body, fmt.Sprintf(`"%s": "RESTRICTED"`, key))
	}
	return body
}

// GetHeaderAsString flattens the request headers into a JSON document for
// logging.
func GetHeaderAsString(req *http.Request) string {
	headerMap := make(map[string]interface{})
	for key, values := range req.Header {
		if len(values) == 1 {
			headerMap[key] = values[0]
		} else {
			headerMap[key] = values
		}
	}
	headerJSON, err := json.MarshalIndent(headerMap, "", "  ")
	if err != nil {
		return "could not convert"
	}
	return string(headerJSON)
}
