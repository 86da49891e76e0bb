package routes

import (
	"fmt"
	"log"

	"homestays-server/storage"
	"homestays-server/utils"

	"github.com/google/uuid"
	"github.com/kataras/iris/v12"
)

type UploadImagesInput struct {
	Images []string `json:"images" validate:"required,min=1,max=10"`
}

// UploadPropertyImages accepts base64 payloads and returns the hosted
// URLs to be attached to a listing.
func UploadPropertyImages(ctx iris.Context) {
	actorID, _ := utils.Actor(ctx)

	var input UploadImagesInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	urls := make([]string, 0, len(input.Images))
	for _, image := range input.Images {
		publicID := fmt.Sprintf("property/%d/%s", actorID, uuid.NewString())
		url, err := storage.UploadBase64Image(image, publicID)
		if err != nil {
			log.Printf("image upload failed for user %d: %v", actorID, err)
			utils.CreateError(iris.StatusBadGateway, "Upload Error", "Failed to upload image", ctx)
			return
		}
		urls = append(urls, url)
	}

	ctx.JSON(iris.Map{"urls": urls})
}
