package validations

import (
	"context"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	domainGenerate "github.com/linkforge/linkforge/domains/generate"
	pkgError "github.com/linkforge/linkforge/pkg/error"
)

func ValidateGenerateContent(ctx context.Context, request domainGenerate.ContentRequest) error {
	err := validation.ValidateStructWithContext(ctx, &request,
		validation.Field(&request.Prompt, validation.Required, validation.Length(1, 2000)),
	)
	if err != nil {
		return pkgError.ValidationError(err.Error())
	}
	return nil
}

func ValidateGenerateImage(ctx context.Context, request domainGenerate.ImageRequest) error {
	err := validation.ValidateStructWithContext(ctx, &request,
		validation.Field(&request.Prompt, validation.Required, validation.Length(1, 2000)),
	)
	if err != nil {
		return pkgError.ValidationError(err.Error())
	}
	return nil
}
