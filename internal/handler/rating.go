package handler

import (
	"log"
	"net/http"

	"github.com/Zlobinnn/home-viewer/internal/service"
	"github.com/Zlobinnn/home-viewer/pkg/customerror"
	"github.com/gin-gonic/gin"
)

type RatingHandlerI interface {
	RegisterRoutes(group *gin.RouterGroup)
	SubmitRating(ctx *gin.Context)
}

type RatingHandler struct {
	ratingService service.RatingServiceI
	host          string
	port          string
}

func NewRatingHandler(ratingService service.RatingServiceI, host, port string) RatingHandlerI {
	return &RatingHandler{
		ratingService: ratingService,
		host:          host,
		port:          port,
	}
}

func (ratingHandler *RatingHandler) RegisterRoutes(group *gin.RouterGroup) {
	ratingGroup := group.Group("/ratings")
	ratingGroup.POST("", ratingHandler.SubmitRating)
}

// Pointer fields so a missing field and a wrong-typed field both fail the
// type check, the only validation this endpoint does. The value range is
// the star widget's concern, not the server's.
type ratingRequestDTO struct {
	ApartmentId *int64   `json:"apartmentId"`
	Rating      *float64 `json:"rating"`
	UserToken   *string  `json:"userToken"`
}

func (ratingHandler *RatingHandler) SubmitRating(ctx *gin.Context) {
	var request ratingRequestDTO
	if err := ctx.ShouldBindBodyWithJSON(&request); err != nil {
		ctx.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"status": http.StatusBadRequest,
			"body":   gin.H{},
			"error":  "invalid data",
		})
		return
	}
	if request.ApartmentId == nil || request.Rating == nil || request.UserToken == nil {
		ctx.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"status": http.StatusBadRequest,
			"body":   gin.H{},
			"error":  "apartmentId, rating and userToken are required",
		})
		return
	}
	stored, err := ratingHandler.ratingService.SubmitRating(*request.ApartmentId, *request.Rating, *request.UserToken)
	if err == customerror.ErrInvalidInput {
		ctx.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"status": http.StatusBadRequest,
			"body":   gin.H{},
			"error":  "invalid data",
		})
		return
	}
	if err != nil {
		ctx.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"status": http.StatusInternalServerError,
			"body":   gin.H{},
			"error":  "Internal Server Error",
		})
		log.Print(err.Error())
		return
	}
	ctx.JSON(http.StatusOK, gin.H{
		"status": http.StatusOK,
		"body": gin.H{
			"rating": stored,
		},
		"error": nil,
	})
}
