package handler

import (
	"log"
	"net/http"
	"strconv"

	"github.com/Zlobinnn/home-viewer/internal/service"
	modelsCity "github.com/Zlobinnn/home-viewer/pkg/city"
	"github.com/Zlobinnn/home-viewer/pkg/customerror"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"
)

type CityHandlerI interface {
	RegisterRoutes(group *gin.RouterGroup)
	GetCities(ctx *gin.Context)
	InsertCity(ctx *gin.Context)
	DeleteCity(ctx *gin.Context)
}

type CityHandler struct {
	cityService service.CityServiceI
	host        string
	port        string
}

func NewCityHandler(cityService service.CityServiceI, host, port string) CityHandlerI {
	return &CityHandler{
		cityService: cityService,
		host:        host,
		port:        port,
	}
}

func (cityHandler *CityHandler) RegisterRoutes(group *gin.RouterGroup) {
	cityGroup := group.Group("/cities")
	cityGroup.GET("", cityHandler.GetCities)
	cityGroup.POST("", cityHandler.InsertCity)
	cityGroup.DELETE("/:id", cityHandler.DeleteCity)
}

type cityRequestDTO struct {
	Name        string  `json:"name"`
	Description *string `json:"description"`
}

func (cityHandler *CityHandler) GetCities(ctx *gin.Context) {
	cities, err := cityHandler.cityService.GetCities()
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
			"cities": cities,
		},
		"error": nil,
	})
}

func (cityHandler *CityHandler) InsertCity(ctx *gin.Context) {
	var request cityRequestDTO
	if err := ctx.ShouldBindBodyWithJSON(&request); err != nil {
		ctx.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"status": http.StatusBadRequest,
			"body":   gin.H{},
			"error":  "invalid data",
		})
		return
	}
	city := modelsCity.City{
		Name:        request.Name,
		Description: request.Description,
	}
	_, err := cityHandler.cityService.InsertCity(&city)
	if err == customerror.ErrInvalidInput {
		ctx.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"status": http.StatusBadRequest,
			"body":   gin.H{},
			"error":  "name is required",
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
			"city": city,
		},
		"error": nil,
	})
}

func (cityHandler *CityHandler) DeleteCity(ctx *gin.Context) {
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
	err = cityHandler.cityService.DeleteCity(idInt)
	if err == pgx.ErrNoRows {
		ctx.AbortWithStatusJSON(http.StatusNotFound, gin.H{
			"status": http.StatusNotFound,
			"body":   gin.H{},
			"error":  "city not found",
		})
		return
	}
	if err == customerror.ErrConflict {
		ctx.AbortWithStatusJSON(http.StatusConflict, gin.H{
			"status": http.StatusConflict,
			"body":   gin.H{},
			"error":  "city has apartments",
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
			"message": "city deleted",
		},
		"error": nil,
	})
}
