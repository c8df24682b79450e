package database

import (
	"context"
	"encoding/base64"
	"log"

	"github.com/ntai0404/map-excel-api-chat/config/environment"

	"cloud.google.com/go/firestore"
	firebase "firebase.google.com/go"
	"google.golang.org/api/option"
)

var FirebaseApp *firebase.App
var FirestoreClient *firestore.Client

// InitFirebase initializes the Firestore client used for chat history.
// History is an optional feature: when no credentials are configured the
// client stays nil and the history routes report service unavailable.
func InitFirebase() {
	encodedCredentials := environment.GetFirebaseKey()
	if encodedCredentials == "" {
		log.Println("FIREBASE_CREDENTIALS_BASE64 not set, chat history disabled")
		return
	}

	decodedCredentials, err := base64.StdEncoding.DecodeString(encodedCredentials)
	if err != nil {
		log.Fatalf("Failed to decode Firebase credentials: %v", err)
	}

	projectID := environment.GetFirebaseProjectID()
	if projectID == "" {
		log.Fatal("FIREBASE_PROJECT_ID environment variable is missing")
	}

	ctx := context.Background()
	firestoreOpt := option.WithCredentialsJSON(decodedCredentials)

	config := &firebase.Config{
		ProjectID: projectID,
	}
	app, err := firebase.NewApp(ctx, config, firestoreOpt)
	if err != nil {
		log.Fatalf("Failed to initialize Firebase: %v", err)
	}
	FirebaseApp = app

	FirestoreClient, err = app.Firestore(ctx)
	if err != nil {
		log.Fatalf("Failed to create Firestore client: %v", err)
	}
	log.Println("Firebase Firestore initialized successfully")
}

// GetFirestoreClient returns the Firestore client instance (nil when chat
// history is disabled).
func GetFirestoreClient() *firestore.Client {
	return FirestoreClient
}
