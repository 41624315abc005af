package http

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/dmitrijs2005/itemkeeper/internal/api"
	"github.com/dmitrijs2005/itemkeeper/internal/common"
	"github.com/dmitrijs2005/itemkeeper/internal/server/models"
	"github.com/gin-gonic/gin"
)

const (
	msgBadBody       = "Invalid request body"
	msgBadPagination = "skip and limit must be integers"
	msgUserNotFound  = "User not found"
)

// loginRequest accepts either a JSON body with email and password or the
// OAuth2 password form with username and password.
type loginRequest struct {
	Email    string `json:"email" form:"username"`
	Password string `json:"password" form:"password"`
}

func (s *HTTPServer) welcome(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message": "Welcome to itemkeeper",
		"api":     APIPrefix,
	})
}

func (s *HTTPServer) register(c *gin.Context) {
	var req api.Credentials
	if err := c.ShouldBindJSON(&req); err != nil {
		s.badRequest(c, msgBadBody)
		return
	}

	u, err := s.users.Register(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		s.abortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, api.FromUser(u))
}

func (s *HTTPServer) login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBind(&req); err != nil {
		s.badRequest(c, msgBadBody)
		return
	}

	t, err := s.users.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		s.abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, api.Token{AccessToken: t.AccessToken, TokenType: t.TokenType})
}

func (s *HTTPServer) getMe(c *gin.Context) {
	u, err := s.users.GetUser(c.Request.Context(), callerFrom(c).ID)
	if err != nil {
		s.abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, api.FromUser(u))
}

func (s *HTTPServer) updateMe(c *gin.Context) {
	var patch models.UserPatch
	if !bindPatch(c, &patch) {
		s.badRequest(c, msgBadBody)
		return
	}

	u, err := s.users.UpdateUser(c.Request.Context(), callerFrom(c).ID, patch)
	if err != nil {
		s.abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, api.FromUser(u))
}

func (s *HTTPServer) deleteMe(c *gin.Context) {
	ok, err := s.users.DeleteUser(c.Request.Context(), callerFrom(c).ID)
	if err != nil {
		s.abortWithError(c, err)
		return
	}
	if !ok {
		s.abortWithError(c, common.NewPublicError(common.ErrorNotFound, msgUserNotFound))
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *HTTPServer) createItem(c *gin.Context) {
	var req api.CreateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.badRequest(c, msgBadBody)
		return
	}

	it, err := s.items.Create(c.Request.Context(), callerFrom(c), req.Title, req.Description)
	if err != nil {
		s.abortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, api.FromItem(it))
}

func (s *HTTPServer) listItems(c *gin.Context) {
	skip, err := queryInt(c, "skip", 0)
	if err != nil {
		s.badRequest(c, msgBadPagination)
		return
	}
	limit, err := queryInt(c, "limit", api.DefaultListLimit)
	if err != nil {
		s.badRequest(c, msgBadPagination)
		return
	}

	list, err := s.items.List(c.Request.Context(), callerFrom(c), skip, limit)
	if err != nil {
		s.abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, api.FromItems(list))
}

func (s *HTTPServer) getItem(c *gin.Context) {
	it, err := s.items.Get(c.Request.Context(), callerFrom(c), c.Param("id"))
	if err != nil {
		s.abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, api.FromItem(it))
}

func (s *HTTPServer) updateItem(c *gin.Context) {
	var patch models.ItemPatch
	if !bindPatch(c, &patch) {
		s.badRequest(c, msgBadBody)
		return
	}

	it, err := s.items.Update(c.Request.Context(), callerFrom(c), c.Param("id"), patch)
	if err != nil {
		s.abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, api.FromItem(it))
}

func (s *HTTPServer) deleteItem(c *gin.Context) {
	if err := s.items.Delete(c.Request.Context(), callerFrom(c), c.Param("id")); err != nil {
		s.abortWithError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *HTTPServer) attachmentUploadURL(c *gin.Context) {
	a, err := s.items.AttachmentUploadURL(c.Request.Context(), callerFrom(c), c.Param("id"))
	if err != nil {
		s.abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, api.AttachmentURL{Key: a.Key, URL: a.URL})
}

func (s *HTTPServer) attachmentDownloadURL(c *gin.Context) {
	a, err := s.items.AttachmentDownloadURL(c.Request.Context(), callerFrom(c), c.Param("id"))
	if err != nil {
		s.abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, api.AttachmentURL{Key: a.Key, URL: a.URL})
}

// bindPatch decodes a JSON patch body. An empty body is an empty patch.
func bindPatch(c *gin.Context, patch any) bool {
	err := c.ShouldBindJSON(patch)
	return err == nil || errors.Is(err, io.EOF)
}

func queryInt(c *gin.Context, name string, def int) (int, error) {
	raw, ok := c.GetQuery(name)
	if !ok {
		return def, nil
	}
	return strconv.Atoi(raw)
}
