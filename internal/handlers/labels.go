package handlers

import (
	"fmt"
	"net/http"
	"path"
	"strconv"
)

func (r *Router) listLabels(w http.ResponseWriter, req *http.Request) {
	id, err := pathID(req)
	if err != nil {
		respondAppError(w, req, err)
		return
	}
	labels, err := r.deps.Pickings.Labels(req.Context(), id)
	if err != nil {
		respondAppError(w, req, err)
		return
	}
	respondJSON(w, http.StatusOK, labels)
}

// downloadLabel streams the stored label file
func (r *Router) downloadLabel(w http.ResponseWriter, req *http.Request) {
	id, err := pathID(req)
	if err != nil {
		respondAppError(w, req, err)
		return
	}
	label, data, err := r.deps.Pickings.LabelFile(req.Context(), id)
	if err != nil {
		respondAppError(w, req, err)
		return
	}

	contentType := label.Attachment.Mimetype
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	// Set headers for download
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", path.Base(label.Attachment.Name)))
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))

	w.Write(data)
}
