package uploadController

import (
	"strings"
	"time"

	"edutok/config"
	"edutok/middleware"
	"edutok/utils"

	"github.com/gofiber/fiber/v2"
)

// Presign issues a time-limited upload credential for a direct
// client-to-bucket PUT. The declared content type must match the kind and the
// declared size must fit the configured ceiling before any credential is cut.
func Presign(c *fiber.Ctx) error {
	if _, ok := c.Locals("userId").(uint); !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	reqData, ok := c.Locals("validatedPresign").(*struct {
		Kind        string `json:"kind"`
		FileName    string `json:"fileName"`
		ContentType string `json:"contentType"`
		SizeBytes   int64  `json:"sizeBytes"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	prefix, ok := utils.UploadKinds[reqData.Kind]
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Unknown upload kind!", nil)
	}

	if !strings.HasPrefix(reqData.ContentType, prefix) {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Content type does not match upload kind!", nil)
	}

	if reqData.SizeBytes > config.AppConfig.UploadMaxBytes {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "File exceeds the upload size limit!", nil)
	}

	key := utils.BuildObjectKey(reqData.Kind, reqData.FileName, time.Now().UTC())

	url, headers, err := utils.PresignUpload(key, reqData.ContentType, reqData.SizeBytes)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to presign upload!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Upload credential issued.", fiber.Map{
		"url":        url,
		"storageKey": key,
		"headers":    headers,
		"expiresIn":  config.AppConfig.PresignExpirySec,
	})
}
