package validations

import (
	"context"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	domainPost "github.com/linkforge/linkforge/domains/post"
	pkgError "github.com/linkforge/linkforge/pkg/error"
)

func ValidateCreatePost(ctx context.Context, request domainPost.CreateRequest) error {
	err := validation.ValidateStructWithContext(ctx, &request,
		validation.Field(&request.Content, validation.Required),
		validation.Field(&request.PostType, validation.In(domainPost.TypeText, domainPost.TypeImage)),
	)
	if err != nil {
		return pkgError.ValidationError(err.Error())
	}

	if request.PostType == domainPost.TypeImage && request.ImageURL == "" {
		return pkgError.ValidationError("image_url: cannot be blank for image posts.")
	}
	return nil
}
