package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/UZRashid/MLG382-Project2/internal/dataset"
	"github.com/UZRashid/MLG382-Project2/pkg/errors"
	"github.com/UZRashid/MLG382-Project2/pkg/log"
)

// PredictionRequest carries the six raw form inputs. Pointer fields
// distinguish a missing value from a legitimate zero.
type PredictionRequest struct {
	Bedrooms   *float64 `form:"bedrooms" json:"bedrooms" binding:"required"`
	Bathrooms  *float64 `form:"bathrooms" json:"bathrooms" binding:"required"`
	SqftLiving *float64 `form:"sqft_living" json:"sqft_living" binding:"required"`
	Floors     *float64 `form:"floors" json:"floors" binding:"required"`
	Waterfront *float64 `form:"waterfront" json:"waterfront" binding:"required"`
	View       *float64 `form:"view" json:"view" binding:"required"`
}

// PredictionResponse is the /predict payload.
type PredictionResponse struct {
	Prediction float64 `json:"prediction"`
	Formatted  string  `json:"formatted"`
}

func (r *PredictionRequest) validate() error {
	// NaN and ±Inf parse as valid floats, and NaN never satisfies a range
	// comparison, so non-finite values must be rejected before the range
	// checks.
	if err := errors.CheckValues("predict", []float64{
		*r.Bedrooms, *r.Bathrooms, *r.SqftLiving, *r.Floors, *r.Waterfront, *r.View,
	}); err != nil {
		return err
	}

	nonNegative := []struct {
		name  string
		value float64
	}{
		{"bedrooms", *r.Bedrooms},
		{"bathrooms", *r.Bathrooms},
		{"sqft_living", *r.SqftLiving},
		{"floors", *r.Floors},
	}
	for _, f := range nonNegative {
		if f.value < 0 {
			return errors.NewValidationError(f.name, "must be non-negative", f.value)
		}
	}
	if w := *r.Waterfront; w != 0 && w != 1 {
		return errors.NewValidationError("waterfront", "must be 0 or 1", w)
	}
	if v := *r.View; v < 0 || v > 4 {
		return errors.NewValidationError("view", "must be between 0 and 4", v)
	}
	return nil
}

func (s *Server) index(c *gin.Context) {
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(indexPage))
}

func (s *Server) predict(c *gin.Context) {
	var req PredictionRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": err.Error()})
		return
	}
	if err := req.validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// The row is assembled by the same code path training uses, so the
	// feature layout cannot diverge from the fitted model's schema.
	row := dataset.FeatureRow(*req.Bedrooms, *req.Bathrooms, *req.SqftLiving,
		*req.Floors, *req.Waterfront, *req.View)

	pred, err := s.forest.Predict(row)
	if err != nil {
		s.logger.Error("prediction failed",
			log.RequestIDKey, c.GetString(log.RequestIDKey),
			log.ErrAttrKey, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "prediction failed"})
		return
	}

	price := pred.At(0, 0)
	c.JSON(http.StatusOK, PredictionResponse{
		Prediction: price,
		Formatted:  FormatUSD(price),
	})
}

func (s *Server) healthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"trees":  len(s.forest.Trees),
	})
}
