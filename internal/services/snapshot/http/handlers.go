// Package http mounts the backup and restore endpoints
package http

import (
	stdhttp "net/http"
	"time"

	"assistant/internal/modkit/httpkit"
	"assistant/internal/platform/net/middleware"
	"assistant/internal/services/snapshot/domain"
)

// Deps are the handler dependencies
type Deps struct {
	Reader domain.ReaderPort
	Writer domain.WriterPort
}

type handlers struct {
	deps Deps
}

// Register mounts the snapshot routes, all of them require X-User-ID
func Register(r httpkit.Router, d Deps) {
	h := &handlers{deps: d}

	httpkit.Protected(r, middleware.HeaderAuth{}, func(gr httpkit.Router) {
		httpkit.PostJSON[domain.Document](gr, "/backup", h.backup)
		httpkit.Get(gr, "/restore", h.restore)
	})
}

// swagger:route POST /backup Snapshot snapshotBackup
// @Summary Store the client's full data snapshot
// @Tags Snapshot
// @Accept json
// @Produce json
// @Param payload body domain.Document true "Snapshot sections"
// @Success 200 {object} domain.BackupReceipt "ok"
// @Router /backup [post]
func (h *handlers) backup(r *stdhttp.Request, in domain.Document) (any, error) {
	uid := httpkit.MustUser(r)
	if err := h.deps.Writer.Save(r.Context(), uid, in); err != nil {
		return nil, err
	}
	return domain.BackupReceipt{
		Status:    "success",
		Message:   "Backup completed successfully",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		UserID:    uid,
	}, nil
}

// swagger:route GET /restore Snapshot snapshotRestore
// @Summary Return the user's stored snapshot
// @Tags Snapshot
// @Produce json
// @Success 200 {object} domain.Document "ok"
// @Router /restore [get]
func (h *handlers) restore(r *stdhttp.Request) (any, error) {
	return h.deps.Reader.Load(r.Context(), httpkit.MustUser(r))
}
