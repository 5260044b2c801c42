package validators

import "go.mongodb.org/mongo-driver/bson"

var PaymentValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType": "object",
		"required": []string{
			"transaction_id",
			"amount",
			"created_at",
		},
		"additionalProperties": true,

		"properties": bson.M{
			"_id": bson.M{
				"bsonType": "objectId",
			},

			"transaction_id": bson.M{
				"bsonType":  "string",
				"minLength": 4,
				"maxLength": 120,
			},

			"amount": bson.M{
				"bsonType": []string{"int", "long"},
				"minimum":  1,
			},

			"booking_id": bson.M{
				"bsonType":  "string",
				"minLength": 24,
				"maxLength": 24,
			},

			"patient": bson.M{
				"bsonType":  "string",
				"maxLength": 254,
			},

			"created_at": bson.M{
				"bsonType": "date",
			},
		},
	},
}
