package api

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/halalcheck/halalcheck/internal/certificates"
	"github.com/halalcheck/halalcheck/internal/config"
	"github.com/halalcheck/halalcheck/pkg/handlers"
	"github.com/halalcheck/halalcheck/pkg/routes"
)

func registerRoutes(
	mux *http.ServeMux,
	domain *Domain,
	cfg *config.Config,
	runtime *Runtime,
) {
	storage := newStorageHandler(
		runtime.Storage,
		runtime.Logger,
		cfg.Storage.MaxListSize,
	)

	applicationGroup := domain.Applications.Handler().Routes()
	applicationGroup.Routes = append(applicationGroup.Routes, routes.Route{
		Method:  "POST",
		Pattern: "/{id}/certificate",
		Handler: issueCertificate(domain.Certificates, runtime),
	})

	routes.Register(
		mux,
		domain.Analyses.Handler().Routes(),
		applicationGroup,
		domain.Certificates.Handler().Routes(),
		domain.Documents.Handler(cfg.API.MaxUploadSizeBytes()).Routes(),
		storage.routes(),
	)
}

// issueCertificate bridges the application path shape to the certificate
// system: POST /applications/{id}/certificate issues for an approved application.
func issueCertificate(sys certificates.System, runtime *Runtime) http.HandlerFunc {
	logger := runtime.Logger.With("handler", "applications")

	return func(w http.ResponseWriter, r *http.Request) {
		id, err := uuid.Parse(r.PathValue("id"))
		if err != nil {
			handlers.RespondError(w, logger, http.StatusBadRequest, certificates.ErrNotFound)
			return
		}

		cert, err := sys.Issue(r.Context(), id)
		if err != nil {
			handlers.RespondError(w, logger, certificates.MapHTTPStatus(err), err)
			return
		}

		handlers.RespondJSON(w, http.StatusCreated, cert)
	}
}
