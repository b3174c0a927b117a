package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Query is a user-submitted request for product advice.
type Query struct {
	ID               primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	QueryTitle       string             `bson:"queryTitle" json:"queryTitle"`
	ProductName      string             `bson:"productName" json:"productName"`
	ProductBrand     string             `bson:"productBrand,omitempty" json:"productBrand,omitempty"`
	ProductImage     string             `bson:"productImage,omitempty" json:"productImage,omitempty"`
	BoycottingReason string             `bson:"boycottingReason,omitempty" json:"boycottingReason,omitempty"`

	// Owner identity, denormalized from the verified principal at create time.
	UserEmail string `bson:"userEmail" json:"userEmail"`
	UserName  string `bson:"userName,omitempty" json:"userName,omitempty"`
	UserPhoto string `bson:"userPhoto,omitempty" json:"userPhoto,omitempty"`

	CreatedAt           time.Time `bson:"createdAt" json:"createdAt"`
	RecommendationCount int64     `bson:"recommendationCount" json:"recommendationCount"`
}

// Recommendation is a suggestion posted against a Query.
type Recommendation struct {
	ID primitive.ObjectID `bson:"_id,omitempty" json:"id"`

	// Parent query, plus fields denormalized from it. UserEmail is the
	// query OWNER's email and drives the recommendations-for-me listing.
	QueryID     string `bson:"queryId" json:"queryId"`
	QueryTitle  string `bson:"queryTitle,omitempty" json:"queryTitle,omitempty"`
	ProductName string `bson:"productName,omitempty" json:"productName,omitempty"`
	UserEmail   string `bson:"userEmail,omitempty" json:"userEmail,omitempty"`

	RecommendationTitle     string `bson:"recommendationTitle,omitempty" json:"recommendationTitle,omitempty"`
	RecommendedProductName  string `bson:"recommendedProductName" json:"recommendedProductName"`
	RecommendedProductImage string `bson:"recommendedProductImage,omitempty" json:"recommendedProductImage,omitempty"`
	RecommendationReason    string `bson:"recommendationReason,omitempty" json:"recommendationReason,omitempty"`

	// Author identity. Email is always taken from the verified principal.
	RecommenderEmail string `bson:"recommenderEmail" json:"recommenderEmail"`
	RecommenderName  string `bson:"recommenderName,omitempty" json:"recommenderName,omitempty"`

	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
}

// CreateQueryRequest carries the client-supplied fields for a new query
// together with the verified owner identity.
type CreateQueryRequest struct {
	OwnerEmail string
	OwnerName  string
	OwnerPhoto string

	QueryTitle       string
	ProductName      string
	ProductBrand     string
	ProductImage     string
	BoycottingReason string
}

// CreateRecommendationRequest carries the client-supplied fields for a new
// recommendation together with the verified author identity.
type CreateRecommendationRequest struct {
	RecommenderEmail string
	RecommenderName  string

	QueryID         string
	QueryTitle      string
	ProductName     string
	QueryOwnerEmail string

	RecommendationTitle     string
	RecommendedProductName  string
	RecommendedProductImage string
	RecommendationReason    string
}

// ServerManagedQueryFields are set by the server and must never be writable
// through the partial-update path.
var ServerManagedQueryFields = []string{
	"_id",
	"id",
	"createdAt",
	"recommendationCount",
	"userEmail",
	"userName",
	"userPhoto",
}
