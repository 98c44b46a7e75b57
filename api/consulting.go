package api

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tresidus/tresidus-api/consulting"
)

// response is the success form of the response envelope
type response struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data"`
	Count   *int        `json:"count,omitempty"`
}

// bindBody decodes a JSON body. An empty body decodes to the zero value so
// that the service reports which fields are missing.
func bindBody(c *gin.Context, obj interface{}) bool {
	if err := c.ShouldBindJSON(obj); err != nil && err != io.EOF {
		abortWithEncoding(c, http.StatusBadRequest, errorCannotParseRequest.withMessage(err.Error()), err)
		return false
	}
	return true
}

func (s *Server) createConsultingRequest(c *gin.Context) {
	var in consulting.CreateInput
	if !bindBody(c, &in) {
		return
	}

	r, err := s.service.CreateRequest(c.Request.Context(), in)
	if err != nil {
		abortWithServiceError(c, errorCreateRequest, err)
		return
	}

	c.JSON(http.StatusCreated, response{
		Success: true,
		Message: "Consulting request submitted successfully",
		Data: gin.H{
			"id":     r.ID,
			"status": r.Status,
		},
	})
}

func (s *Server) listConsultingRequests(c *gin.Context) {
	requests, err := s.service.ListRequests(c.Request.Context())
	if err != nil {
		abortWithServiceError(c, errorListRequests, err)
		return
	}

	count := len(requests)
	c.JSON(http.StatusOK, response{
		Success: true,
		Data:    requests,
		Count:   &count,
	})
}

func (s *Server) getConsultingRequest(c *gin.Context) {
	r, err := s.service.GetRequest(c.Request.Context(), c.Param("id"))
	if err != nil {
		abortWithServiceError(c, errorGetRequest, err)
		return
	}

	c.JSON(http.StatusOK, response{
		Success: true,
		Data:    r,
	})
}

func (s *Server) updateConsultingRequest(c *gin.Context) {
	var in consulting.UpdateInput
	if !bindBody(c, &in) {
		return
	}

	r, err := s.service.UpdateRequest(c.Request.Context(), c.Param("id"), in)
	if err != nil {
		abortWithServiceError(c, errorUpdateRequest, err)
		return
	}

	c.JSON(http.StatusOK, response{
		Success: true,
		Message: "Consulting request updated successfully",
		Data:    r,
	})
}

func (s *Server) appendCommunication(c *gin.Context) {
	var in consulting.CommunicationInput
	if !bindBody(c, &in) {
		return
	}

	comm, err := s.service.AppendCommunication(c.Request.Context(), c.Param("id"), in)
	if err != nil {
		abortWithServiceError(c, errorAppendCommunication, err)
		return
	}

	c.JSON(http.StatusCreated, response{
		Success: true,
		Message: "Communication added successfully",
		Data:    comm,
	})
}

func (s *Server) deleteConsultingRequest(c *gin.Context) {
	r, err := s.service.DeleteRequest(c.Request.Context(), c.Param("id"))
	if err != nil {
		abortWithServiceError(c, errorDeleteRequest, err)
		return
	}

	c.JSON(http.StatusOK, response{
		Success: true,
		Message: "Consulting request deleted successfully",
		Data:    r,
	})
}
