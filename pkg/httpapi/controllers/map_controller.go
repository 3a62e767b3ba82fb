package controllers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	enTranslations "github.com/go-playground/validator/v10/translations/en"
	"github.com/julienschmidt/httprouter"
	"go.uber.org/zap"

	"github.com/go-roadmap/roadmap-core/pkg/httpapi/routerhelper"
	"github.com/go-roadmap/roadmap-core/pkg/maperr"
	"github.com/go-roadmap/roadmap-core/pkg/roadmap"
)

const msgpackContentType = "application/msgpack"

type mapAPI struct {
	mapService MapService
	log        *zap.Logger
}

// New returns a mapAPI serving mapService, logging through log.
func New(mapService MapService, log *zap.Logger) *mapAPI {
	return &mapAPI{mapService: mapService, log: log}
}

// Routes registers every query endpoint under group.
func (api *mapAPI) Routes(group *routerhelper.RouteGroup) {
	group.GET("/nearest-lane", api.nearestLane)
	group.POST("/route", api.buildRoute)
	group.GET("/submap", api.submap)
}

// nearestLaneResponse model info
//
//	@Description	response body for the nearest-lane query.
type nearestLaneResponse struct {
	LaneID     uint64  `json:"lane_id"`
	Width      float64 `json:"width"`
	SpeedLimit float64 `json:"speed_limit"`
}

// nearestLane godoc
// @Summary		nearest-lane operation resolves a world point to its nearest lane, reporting that lane's width and speed limit.
// @Description	nearest-lane operation resolves a world point to its nearest lane, reporting that lane's width and speed limit.
// @Tags			map
// @ID nearest-lane
// @Param			x	query	number	true	"world x coordinate"
// @Param			y	query	number	true	"world y coordinate"
// @Produce		application/json
// @Router			/api/nearest-lane [get]
// @Success		200	{object}	nearestLaneResponse
// @Failure		400	{object}	errorResponse
// @Failure		404	{object}	errorResponse
// @Failure		500	{object}	errorResponse
func (api *mapAPI) nearestLane(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	x, y, err := parseXY(r.URL.Query())
	if err != nil {
		api.BadRequestResponse(w, r, err)
		return
	}

	result, err := api.mapService.NearestLane(x, y)
	if err != nil {
		if maperr.Is(err, maperr.NotFound) {
			api.NotFoundResponse(w, r, err)
			return
		}
		api.ServerErrorResponse(w, r, err)
		return
	}

	headers := make(http.Header)
	if err := api.writeJSON(w, http.StatusOK, envelope{"data": result}, headers); err != nil {
		api.ServerErrorResponse(w, r, err)
	}
}

// routeRequest model info
//
//	@Description	request body for the route-building operation.
type routeRequest struct {
	StartX *float64 `json:"start_x" validate:"required"`
	StartY *float64 `json:"start_y" validate:"required"`
	EndX   *float64 `json:"end_x" validate:"required"`
	EndY   *float64 `json:"end_y" validate:"required"`
}

// buildRoute godoc
// @Summary		route operation computes the best path between two world points.
// @Description	route operation computes the best path between two world points, returning its lane sections and center polyline.
// @Tags			map
// @ID build-route
// @Param			body	body	routeRequest	true	"route request"
// @Accept			application/json
// @Produce		application/json
// @Router			/api/route [post]
// @Success		200	{object}	usecases.RouteResult
// @Failure		400	{object}	errorResponse
// @Failure		404	{object}	errorResponse
// @Failure		500	{object}	errorResponse
func (api *mapAPI) buildRoute(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var request routeRequest
	if err := decodeJSON(r, &request); err != nil {
		api.BadRequestResponse(w, r, err)
		return
	}

	if err := validateStruct(request); err != nil {
		api.BadRequestResponse(w, r, err)
		return
	}

	result, err := api.mapService.BuildRoute(*request.StartX, *request.StartY, *request.EndX, *request.EndY)
	if err != nil {
		if maperr.Is(err, maperr.NotFound) {
			api.NotFoundResponse(w, r, err)
			return
		}
		api.ServerErrorResponse(w, r, err)
		return
	}

	headers := make(http.Header)
	if err := api.writeJSON(w, http.StatusOK, envelope{"data": result}, headers); err != nil {
		api.ServerErrorResponse(w, r, err)
	}
}

// submap godoc
// @Summary		submap operation windows the map around a world point.
// @Description	submap operation windows the map around a world point, returning the surviving lanes, roads and connections. Honors an Accept: application/msgpack header for the binary snapshot form.
// @Tags			map
// @ID submap
// @Param			x		query	number	true	"center world x coordinate"
// @Param			y		query	number	true	"center world y coordinate"
// @Param			width	query	number	true	"window width"
// @Param			height	query	number	true	"window height"
// @Produce		application/json
// @Produce		application/msgpack
// @Router			/api/submap [get]
// @Success		200	{object}	roadmap.Snapshot
// @Failure		400	{object}	errorResponse
// @Failure		500	{object}	errorResponse
func (api *mapAPI) submap(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	values := r.URL.Query()
	x, y, err := parseXY(values)
	if err != nil {
		api.BadRequestResponse(w, r, err)
		return
	}
	width, err := parseFloatParam(values, "width")
	if err != nil {
		api.BadRequestResponse(w, r, err)
		return
	}
	height, err := parseFloatParam(values, "height")
	if err != nil {
		api.BadRequestResponse(w, r, err)
		return
	}

	sub, err := api.mapService.Submap(x, y, width, height)
	if err != nil {
		api.ServerErrorResponse(w, r, err)
		return
	}

	snapshot := sub.Snapshot()

	if r.Header.Get("Accept") == msgpackContentType {
		data, err := roadmap.EncodeSnapshot(snapshot)
		if err != nil {
			api.ServerErrorResponse(w, r, err)
			return
		}
		w.Header().Set("Content-Type", msgpackContentType)
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(data)
		return
	}

	headers := make(http.Header)
	if err := api.writeJSON(w, http.StatusOK, envelope{"data": snapshot}, headers); err != nil {
		api.ServerErrorResponse(w, r, err)
	}
}

func parseXY(values url.Values) (float64, float64, error) {
	x, err := parseFloatParam(values, "x")
	if err != nil {
		return 0, 0, err
	}
	y, err := parseFloatParam(values, "y")
	if err != nil {
		return 0, 0, err
	}
	return x, y, nil
}

func parseFloatParam(values url.Values, name string) (float64, error) {
	raw := values.Get(name)
	if raw == "" {
		return 0, fmt.Errorf("missing required query parameter %q", name)
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid query parameter %q: %w", name, err)
	}
	return v, nil
}

func decodeJSON(r *http.Request, dst interface{}) error {
	return json.NewDecoder(r.Body).Decode(dst)
}

func validateStruct(v interface{}) error {
	validate := validator.New()
	if err := validate.Struct(v); err != nil {
		validationErrs, ok := err.(validator.ValidationErrors)
		if !ok {
			return err
		}

		english := en.New()
		uni := ut.New(english, english)
		trans, _ := uni.GetTranslator("en")
		_ = enTranslations.RegisterDefaultTranslations(validate, trans)

		messages := make([]string, 0, len(validationErrs))
		for _, e := range validationErrs {
			messages = append(messages, e.Translate(trans))
		}
		return fmt.Errorf("validation error: %v", messages)
	}
	return nil
}
