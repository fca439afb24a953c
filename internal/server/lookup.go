package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rezonia/efactura/internal/address"
	"github.com/rezonia/efactura/internal/identifier"
)

func (s *Server) handleNormalizeIdentifier(c *gin.Context) {
	var req IdentifierRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request", Details: err.Error()})
		return
	}

	normalized, err := identifier.NormalizeTaxIdentifier(req.Value)
	if errors.Is(err, identifier.ErrEmptyIdentifier) {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error(), Field: "value"})
		return
	}

	kind := identifier.Classify(normalized)
	resp := IdentifierResponse{
		Input:      req.Value,
		Normalized: normalized,
		Kind:       kind.String(),
		Valid:      kind != identifier.KindUnknown,
	}
	if kind == identifier.KindCompany {
		resp.Country, _ = identifier.ResolveCountryFromIdentifier(normalized)
	}

	c.JSON(http.StatusOK, resp)
}

func (s *Server) handleNormalizeAddress(c *gin.Context) {
	var req AddressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request", Details: err.Error()})
		return
	}

	countryCode := identifier.PartyCountryCode(req.CompanyID, req.Address.Country)
	sanitized := address.Sanitize(&req.Address, countryCode)

	resp := AddressResponse{
		Street:              sanitized.Street,
		City:                sanitized.City,
		PostalCode:          sanitized.PostalCode,
		Subdivision:         sanitized.Subdivision,
		SubdivisionResolved: sanitized.SubdivisionResolved,
		CountryCode:         sanitized.CountryCode,
		Domestic:            address.IsDomesticCountryCode(countryCode),
	}
	if address.IsBucharestSubdivision(sanitized.Subdivision) {
		resp.Sector, _ = address.ResolveBucharestSector(req.Address.City)
	}

	c.JSON(http.StatusOK, resp)
}
