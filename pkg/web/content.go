package web

import (
	"encoding/json"
	"fmt"
	"net/http"
)

var (
	ContentTypeTextHTML        = "text/html"
	ContentTypeTextPlain       = "text/plain"
	ContentTypeApplicationJSON = "application/json"
	ContentTypeSVGXML          = "image/svg+xml"
)

func ContentType(w http.ResponseWriter, ct string) {
	w.Header().Set("Content-Type", fmt.Sprintf("%s; charset=utf-8", ct))
}

// WriteJSON writes v as an indented JSON response with the given status
func WriteJSON(w http.ResponseWriter, code int, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "\t")
	if err != nil {
		code := http.StatusInternalServerError
		http.Error(w, http.StatusText(code), code)
		return err
	}
	ContentType(w, ContentTypeApplicationJSON)
	w.WriteHeader(code)
	_, err = w.Write(data)
	return err
}

// WriteError writes err as a JSON object {"error": "..."}
func WriteError(w http.ResponseWriter, code int, err error) error {
	return WriteJSON(w, code, map[string]string{"error": err.Error()})
}
