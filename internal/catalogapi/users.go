package catalogapi

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// The users routes are placeholders kept for parity with the catalog
// server's route table.

func ListUsers(c *gin.Context) {
	c.String(http.StatusOK, "respond with a resource")
}

func UserInfo(c *gin.Context) {
	c.Data(http.StatusOK, "text/html; charset=utf-8",
		[]byte("<!DOCTYPE html><html><head><title>Cool users</title></head><body><h1>Volkswagen</h1></body></html>"))
}
