package handler

import (
	"log"
	"net/http"
	"strconv"

	"github.com/Zlobinnn/home-viewer/internal/service"
	modelsApartment "github.com/Zlobinnn/home-viewer/pkg/apartment"
	"github.com/Zlobinnn/home-viewer/pkg/customerror"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"
)

type ApartmentHandlerI interface {
	RegisterRoutes(group *gin.RouterGroup)
	GetApartments(ctx *gin.Context)
	GetApartment(ctx *gin.Context)
	InsertApartment(ctx *gin.Context)
	UpdateApartment(ctx *gin.Context)
	DeleteApartment(ctx *gin.Context)
}

type ApartmentHandler struct {
	apartmentService service.ApartmentServiceI
	host             string
	port             string
}

func NewApartmentHandler(apartmentService service.ApartmentServiceI, host, port string) ApartmentHandlerI {
	return &ApartmentHandler{
		apartmentService: apartmentService,
		host:             host,
		port:             port,
	}
}

func (apartmentHandler *ApartmentHandler) RegisterRoutes(group *gin.RouterGroup) {
	apartmentGroup := group.Group("/apartments")
	apartmentGroup.GET("", apartmentHandler.GetApartments)
	apartmentGroup.GET("/:id", apartmentHandler.GetApartment)
	apartmentGroup.POST("", apartmentHandler.InsertApartment)
	apartmentGroup.PUT("/:id", apartmentHandler.UpdateApartment)
	apartmentGroup.DELETE("/:id", apartmentHandler.DeleteApartment)
}

// apartmentRequestDTO is shared by create and update. Every field is
// optional so the same shape can express a partial PUT; numeric fields
// accept a number or a numeric string the way the web client sends them.
// The primary key never comes from the body and cityId is create-only.
type apartmentRequestDTO struct {
	Title       *string                       `json:"title"`
	Url         *string                       `json:"url"`
	Price       modelsApartment.OptionalFloat `json:"price"`
	Address     *string                       `json:"address"`
	Rooms       modelsApartment.OptionalInt   `json:"rooms"`
	Floor       modelsApartment.OptionalInt   `json:"floor"`
	TotalFloors modelsApartment.OptionalInt   `json:"totalFloors"`
	Area        modelsApartment.OptionalFloat `json:"area"`
	Pros        *[]string                     `json:"pros"`
	Cons        *[]string                     `json:"cons"`
	ImageUrl    *string                       `json:"imageUrl"`
	IsHidden    *bool                         `json:"isHidden"`
	CityId      modelsApartment.OptionalInt   `json:"cityId"`
}

func (apartmentHandler *ApartmentHandler) GetApartments(ctx *gin.Context) {
	var cityId *int64
	cityIdQuery := ctx.DefaultQuery("cityId", "")
	if cityIdQuery != "" {
		cityIdInt, err := strconv.ParseInt(cityIdQuery, 10, 64)
		if err != nil {
			ctx.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
				"status": http.StatusBadRequest,
				"body":   gin.H{},
				"error":  "invalid cityId",
			})
			return
		}
		cityId = &cityIdInt
	}
	apartments, err := apartmentHandler.apartmentService.GetApartments(cityId)
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
			"apartments": apartments,
		},
		"error": nil,
	})
}

func (apartmentHandler *ApartmentHandler) GetApartment(ctx *gin.Context) {
	id := ctx.Param("id")
	idInt, err := strconv.ParseInt(id, 10, 64)
	if err != nil {
		ctx.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"status": http.StatusBadRequest,
			"body":   gin.H{},
			"error":  "invalid id",
		})
		return
	}
	apartment, err := apartmentHandler.apartmentService.GetApartment(idInt)
	if err == pgx.ErrNoRows {
		ctx.AbortWithStatusJSON(http.StatusNotFound, gin.H{
			"status": http.StatusNotFound,
			"body":   gin.H{},
			"error":  "apartment not found",
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
			"apartment": apartment,
		},
		"error": nil,
	})
}

func (apartmentHandler *ApartmentHandler) InsertApartment(ctx *gin.Context) {
	var request apartmentRequestDTO
	if err := ctx.ShouldBindBodyWithJSON(&request); err != nil {
		ctx.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"status": http.StatusBadRequest,
			"body":   gin.H{},
			"error":  "invalid data",
		})
		return
	}
	if !request.CityId.Valid {
		ctx.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"status": http.StatusBadRequest,
			"body":   gin.H{},
			"error":  "cityId is required",
		})
		return
	}
	apartment := modelsApartment.Apartment{
		Price:       request.Price.Ptr(),
		Rooms:       request.Rooms.Ptr(),
		Floor:       request.Floor.Ptr(),
		TotalFloors: request.TotalFloors.Ptr(),
		Area:        request.Area.Ptr(),
		ImageUrl:    request.ImageUrl,
		CityId:      request.CityId.Value,
		Pros:        []string{},
		Cons:        []string{},
	}
	if request.Title != nil {
		apartment.Title = *request.Title
	}
	if request.Url != nil {
		apartment.Url = *request.Url
	}
	if request.Address != nil {
		apartment.Address = *request.Address
	}
	if request.Pros != nil {
		apartment.Pros = *request.Pros
	}
	if request.Cons != nil {
		apartment.Cons = *request.Cons
	}
	if request.IsHidden != nil {
		apartment.IsHidden = *request.IsHidden
	}
	_, err := apartmentHandler.apartmentService.InsertApartment(&apartment)
	if err == customerror.ErrInvalidInput {
		ctx.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"status": http.StatusBadRequest,
			"body":   gin.H{},
			"error":  "city not found",
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
	ctx.JSON(http.StatusCreated, gin.H{
		"status": http.StatusCreated,
		"body": gin.H{
			"apartment": apartment,
		},
		"error": nil,
	})
}

func (apartmentHandler *ApartmentHandler) UpdateApartment(ctx *gin.Context) {
	id := ctx.Param("id")
	idInt, err := strconv.ParseInt(id, 10, 64)
	if err != nil {
		ctx.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"status": http.StatusBadRequest,
			"body":   gin.H{},
			"error":  "invalid id",
		})
		return
	}
	var request apartmentRequestDTO
	if err := ctx.ShouldBindBodyWithJSON(&request); err != nil {
		ctx.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"status": http.StatusBadRequest,
			"body":   gin.H{},
			"error":  "invalid data",
		})
		return
	}
	apartment, err := apartmentHandler.apartmentService.GetApartment(idInt)
	if err == pgx.ErrNoRows {
		ctx.AbortWithStatusJSON(http.StatusNotFound, gin.H{
			"status": http.StatusNotFound,
			"body":   gin.H{},
			"error":  "apartment not found",
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
	if request.Title != nil {
		apartment.Title = *request.Title
	}
	if request.Url != nil {
		apartment.Url = *request.Url
	}
	if request.Address != nil {
		apartment.Address = *request.Address
	}
	if request.Price.Present {
		apartment.Price = request.Price.Ptr()
	}
	if request.Rooms.Present {
		apartment.Rooms = request.Rooms.Ptr()
	}
	if request.Floor.Present {
		apartment.Floor = request.Floor.Ptr()
	}
	if request.TotalFloors.Present {
		apartment.TotalFloors = request.TotalFloors.Ptr()
	}
	if request.Area.Present {
		apartment.Area = request.Area.Ptr()
	}
	if request.Pros != nil {
		apartment.Pros = *request.Pros
	}
	if request.Cons != nil {
		apartment.Cons = *request.Cons
	}
	if request.ImageUrl != nil {
		apartment.ImageUrl = request.ImageUrl
	}
	if request.IsHidden != nil {
		apartment.IsHidden = *request.IsHidden
	}
	err = apartmentHandler.apartmentService.UpdateApartment(apartment)
	if err == pgx.ErrNoRows {
		ctx.AbortWithStatusJSON(http.StatusNotFound, gin.H{
			"status": http.StatusNotFound,
			"body":   gin.H{},
			"error":  "apartment not found",
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
			"apartment": apartment,
		},
		"error": nil,
	})
}

func (apartmentHandler *ApartmentHandler) DeleteApartment(ctx *gin.Context) {
	id := ctx.Param("id")
	idInt, err := strconv.ParseInt(id, 10, 64)
	if err != nil {
		ctx.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"status": http.StatusBadRequest,
			"body":   gin.H{},
			"error":  "invalid id",
		})
		return
	}
	err = apartmentHandler.apartmentService.DeleteApartment(idInt)
	if err == pgx.ErrNoRows {
		ctx.AbortWithStatusJSON(http.StatusNotFound, gin.H{
			"status": http.StatusNotFound,
			"body":   gin.H{},
			"error":  "apartment not found",
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
			"message": "apartment deleted",
		},
		"error": nil,
	})
}
