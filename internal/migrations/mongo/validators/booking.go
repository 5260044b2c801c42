package validators

import "go.mongodb.org/mongo-driver/bson"

var BookingValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType": "object",
		"required": []string{
			"treatment",
			"date",
			"slot",
			"patient",
			"patient_name",
			"paid",
			"created_at",
		},
		"additionalProperties": true,

		"properties": bson.M{
			"_id": bson.M{
				"bsonType": "objectId",
			},

			"treatment": bson.M{
				"bsonType":  "string",
				"minLength": 2,
				"maxLength": 100,
			},

			"date": bson.M{
				"bsonType":  "string",
				"minLength": 4,
				"maxLength": 40,
			},

			"slot": bson.M{
				"bsonType":  "string",
				"minLength": 1,
				"maxLength": 60,
			},

			"patient": bson.M{
				"bsonType":  "string",
				"minLength": 3,
				"maxLength": 254,
			},

			"patient_name": bson.M{
				"bsonType":  "string",
				"minLength": 2,
				"maxLength": 100,
			},

			"phone": bson.M{
				"bsonType":  "string",
				"maxLength": 20,
			},

			"paid": bson.M{
				"bsonType": "bool",
			},

			"transaction_id": bson.M{
				"bsonType":  "string",
				"minLength": 4,
				"maxLength": 120,
			},

			"created_at": bson.M{
				"bsonType": "date",
			},
		},
	},
}
