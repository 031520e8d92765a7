package marketplaceserver

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	listinghttpmapper "github.com/Apurer/marketplace-api/internal/domains/listings/adapters/http/mapper"
	listingsapp "github.com/Apurer/marketplace-api/internal/domains/listings/application"
	listingtypes "github.com/Apurer/marketplace-api/internal/domains/listings/application/types"
	"github.com/Apurer/marketplace-api/internal/domains/listings/domain"
	listingsports "github.com/Apurer/marketplace-api/internal/domains/listings/ports"
	apierrors "github.com/Apurer/marketplace-api/internal/shared/errors"
)

const (
	// MaxMultipartMemory is the in-memory budget for parsed uploads; larger parts spill to disk.
	MaxMultipartMemory = 8 << 20
	// MaxListingRequestBytes caps a create request: every allowed image plus form fields.
	MaxListingRequestBytes = (domain.MaxImages+1)*domain.MaxImageBytes + 1<<20
)

// ListingsAPI wires HTTP transport with the listings bounded context service and workflows.
type ListingsAPI struct {
	service      listingsports.Service
	workflows    listingsports.WorkflowOrchestrator
	uploadPrefix string
}

// NewListingsAPI creates a ListingsAPI. Stored images are served under uploadPrefix.
func NewListingsAPI(service listingsports.Service, workflows listingsports.WorkflowOrchestrator, uploadPrefix string) ListingsAPI {
	return ListingsAPI{service: service, workflows: workflows, uploadPrefix: uploadPrefix}
}

func (api *ListingsAPI) uploadsPrefix() string {
	prefix := strings.TrimRight(api.uploadPrefix, "/")
	if prefix == "" {
		return listingsapp.DefaultImageURLPrefix
	}
	if !strings.HasPrefix(prefix, "/") {
		prefix = "/" + prefix
	}
	return prefix
}

// Get /listings
// Lists every listing in insertion order
func (api *ListingsAPI) ListListings(c *gin.Context) {
	listings, err := api.service.List(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, listinghttpmapper.FromDomainListings(listings))
}

// Post /listings
// Creates a listing from multipart form fields and up to five images
func (api *ListingsAPI) CreateListing(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, MaxListingRequestBytes)
	form, err := c.MultipartForm()
	if err != nil {
		var maxBytes *http.MaxBytesError
		if errors.As(err, &maxBytes) {
			respondProblem(c, apierrors.ErrPayloadTooLarge.WithDetail("listing request exceeds the upload limit"))
			return
		}
		if !errors.Is(err, http.ErrNotMultipart) {
			respondProblem(c, apierrors.ErrBadRequest.WithDetail(err.Error()))
			return
		}
	}
	if form != nil {
		defer func() { _ = form.RemoveAll() }()
	}

	input := listinghttpmapper.ToCreateListingInput(form)
	created, err := api.createListing(c.Request.Context(), input)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, listinghttpmapper.FromDomainListing(created))
}

func (api *ListingsAPI) createListing(ctx context.Context, input listingtypes.CreateListingInput) (*domain.Listing, error) {
	if api.workflows != nil {
		return api.workflows.CreateListing(ctx, input)
	}
	return api.service.CreateListing(ctx, input)
}

// Get /uploads/:name
// Streams a stored listing image
func (api *ListingsAPI) GetUpload(c *gin.Context) {
	image, err := api.service.OpenImage(c.Request.Context(), c.Param("name"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	defer image.Body.Close()

	c.Header("Content-Type", image.ContentType)
	c.Header("Cache-Control", "public, max-age=86400")
	if image.Size > 0 {
		c.Header("Content-Length", strconv.FormatInt(image.Size, 10))
	}
	c.Status(http.StatusOK)
	_, _ = io.Copy(c.Writer, image.Body)
}
